package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"wafcore/regex"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	c := Default()

	assert.Equal(string(regex.EngineBacktrack), c.Engine.Generation)
	assert.Equal(uint64(0), c.Engine.MatchLimit)
	assert.True(c.Engine.CRLFIsNewline)
	assert.True(c.Engine.Prefilter)
}

func TestLoadOverridesDefaults(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
engine:
  generation: linear
  matchLimit: 100000
  crlfIsNewline: false
  prefilter: false
`), 0644)
	assert.Nil(err)

	c, err := Load(path)

	assert.Nil(err)
	assert.Equal(string(regex.EngineLinear), c.Engine.Generation)
	assert.Equal(uint64(100000), c.Engine.MatchLimit)
	assert.False(c.Engine.CRLFIsNewline)
	assert.False(c.Engine.Prefilter)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
engine:
  generation: linear
`), 0644)
	assert.Nil(err)

	c, err := Load(path)

	assert.Nil(err)
	assert.Equal(string(regex.EngineLinear), c.Engine.Generation)
	assert.True(c.Engine.CRLFIsNewline)
	assert.True(c.Engine.Prefilter)
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.NotNil(err)
}

func TestLoadMalformedFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("engine: [not a mapping"), 0644)
	assert.Nil(err)

	_, err = Load(path)

	assert.NotNil(err)
}

func TestRegexConfigTranslation(t *testing.T) {
	assert := assert.New(t)
	c := Main{Engine: Engine{
		Generation:    "linear",
		MatchLimit:    5000,
		CRLFIsNewline: true,
		Prefilter:     true,
	}}

	rc := c.RegexConfig()

	assert.Equal(regex.EngineLinear, rc.Engine)
	assert.Equal(uint64(5000), rc.MatchLimit)
	assert.True(rc.CRLFIsNewline)
	assert.True(rc.Prefilter)
}
