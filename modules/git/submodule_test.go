// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubModules(t *testing.T) {
	input := `
[submodule "Library/Fusion"]
	path = Library/Fusion
	url = https://github.com/TheLastProject/fusion.git
[submodule "Library/Protobuf"]
	path = Library/Protobuf
	url = git@github.com:protocolbuffers/protobuf.git
	branch = main
[submodule "no-url"]
	path = Library/NoURL
`
	modules, err := ParseSubModules(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, modules.Len())

	sm, ok := modules.Get("Library/Fusion")
	require.True(t, ok)
	assert.Equal(t, &SubModule{
		Name: "Library/Fusion",
		Path: "Library/Fusion",
		URL:  "https://github.com/TheLastProject/fusion.git",
	}, sm)

	list := modules.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Library/Fusion", list[0].Path)
	assert.Equal(t, "Library/Protobuf", list[1].Path)
	assert.Equal(t, "git@github.com:protocolbuffers/protobuf.git", list[1].URL)

	_, ok = modules.Get("Library/NoURL")
	assert.False(t, ok)
}

func TestParseSubModulesEmpty(t *testing.T) {
	modules, err := ParseSubModules(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, modules.Len())

	var nilModules *SubModules
	assert.Equal(t, 0, nilModules.Len())
	assert.Nil(t, nilModules.List())
}
