// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshalToleratesUnknownFields(t *testing.T) {
	var v struct {
		Status string `json:"status"`
	}
	err := Unmarshal([]byte(`{"status":"success","number":3,"extra":{"a":1}}`), &v)
	assert.NoError(t, err)
	assert.Equal(t, "success", v.Status)

	assert.Error(t, Unmarshal([]byte(`{"status":`), &v))
}
