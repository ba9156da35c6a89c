package domain_test

import (
	"testing"

	"github.com/openkraft/luals-check/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectRoot(t *testing.T) {
	assert.Equal(t, "/work/proj", domain.ResolveProjectRoot("proj", "/work"))
	assert.Equal(t, "/work", domain.ResolveProjectRoot(".", "/work"))
	assert.Equal(t, "/other", domain.ResolveProjectRoot("../other", "/work"))
	assert.Equal(t, "/abs/proj", domain.ResolveProjectRoot("/abs/./proj/", "/work"))
}

func TestFileURIToPath(t *testing.T) {
	p, err := domain.FileURIToPath("file:///proj/a%20b.lua")
	require.NoError(t, err)
	assert.Equal(t, "/proj/a b.lua", p)

	p, err = domain.FileURIToPath("file://localhost/proj/a.lua")
	require.NoError(t, err)
	assert.Equal(t, "/proj/a.lua", p)
}

func TestFileURIToPath_Errors(t *testing.T) {
	_, err := domain.FileURIToPath("untitled:Untitled-1")
	var scheme *domain.UnsupportedSchemeError
	require.ErrorAs(t, err, &scheme)
	assert.Equal(t, "untitled", scheme.Scheme)

	_, err = domain.FileURIToPath("file://server/share/a.lua")
	var invalid *domain.InvalidURIError
	assert.ErrorAs(t, err, &invalid)

	_, err = domain.FileURIToPath("file://%zz/a.lua")
	assert.ErrorAs(t, err, &invalid)
}

func TestRelativize(t *testing.T) {
	rel, err := domain.Relativize("file:///proj/src/a.lua", "/proj")
	require.NoError(t, err)
	assert.Equal(t, "src/a.lua", rel)

	rel, err = domain.Relativize("file:///proj", "/proj")
	require.NoError(t, err)
	assert.Equal(t, ".", rel)

	rel, err = domain.Relativize("file:///usr/share/lua/meta.lua", "/proj")
	require.NoError(t, err)
	assert.Equal(t, "../usr/share/lua/meta.lua", rel)
}

func TestRelativize_UnsupportedScheme(t *testing.T) {
	_, err := domain.Relativize("https://example.com/a.lua", "/proj")
	var scheme *domain.UnsupportedSchemeError
	require.ErrorAs(t, err, &scheme)
	assert.Contains(t, err.Error(), `expected "file"`)
}

func TestInProject(t *testing.T) {
	assert.True(t, domain.InProject("file:///proj/a.lua", "/proj"))
	assert.True(t, domain.InProject("file:///proj", "/proj"))
	assert.True(t, domain.InProject("file:///proj/..hidden/a.lua", "/proj"))
	assert.False(t, domain.InProject("file:///other/b.lua", "/proj"))
	assert.False(t, domain.InProject("file:///project2/b.lua", "/proj"), "prefix match is by component")
	assert.True(t, domain.InProject("file://server/share/a.lua", "/proj"), "unconvertible URIs stay visible")
}
