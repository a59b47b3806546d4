package site

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()

	require.NoError(t, err)
	assert.Equal(t, "Cahya", p.Owner)
	assert.Equal(t, "gedecahya3@gmail.com", p.Contact.Email)
	assert.Equal(t, []string{"Fullstack Developer", "UX/UI Designer", "IT Support", "Content Creator"}, p.Roles)
	assert.Equal(t, 3*time.Second, p.RoleInterval())
	assert.Equal(t, 50, p.ScrollThresholdPX)
	require.Len(t, p.Nav, 4)
	assert.Equal(t, "#portfolio", p.Nav[2].Href)
	require.Len(t, p.Services, 4)
	assert.True(t, p.Services[0].Wide)
	assert.False(t, p.Services[1].Wide)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Cahya", p.Owner)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "owner: Zach\ncontact:\n  email: zach@example.com\nroles: [Builder]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "Zach", p.Owner)
	assert.Equal(t, 3000, p.RoleIntervalMS)
	assert.Equal(t, 50, p.ScrollThresholdPX)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read profile")
}

func TestParse_Validation(t *testing.T) {
	_, err := Parse([]byte("greeting: hi\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner is required")
	assert.Contains(t, err.Error(), "contact.email is required")
	assert.Contains(t, err.Error(), "at least one role is required")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("roles: [unterminated"))
	assert.ErrorContains(t, err, "decode profile")
}

func TestRoleRotation(t *testing.T) {
	p := &Profile{Roles: []string{"a", "b", "c"}}

	assert.Equal(t, "a", p.RoleAt(0))
	assert.Equal(t, "b", p.RoleAt(4))
	assert.Equal(t, "c", p.RoleAt(-1))
}
