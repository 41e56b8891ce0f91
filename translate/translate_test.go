package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage(language.AmericanEnglish)

	assert.Equal("label loop missing", From("label %v missing", "loop"))
	assert.Equal("line 3 'add' x", From("line %d '%v' %v", 3, "add", "x"))
}
