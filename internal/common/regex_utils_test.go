package common

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCompileRegexSet(t *testing.T) {
	set := CompileRegexSet([]string{`^https://`, `(unclosed`, `\.internal$`}, zerolog.Nop())

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.MatchString("https://example.com"))
	assert.True(t, set.MatchString("db.internal"))
	assert.False(t, set.MatchString("ftp://example.com"))
}

func TestRegexSet_Nil(t *testing.T) {
	var set *RegexSet
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.MatchString("anything"))
}
