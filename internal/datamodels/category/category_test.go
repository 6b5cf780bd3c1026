package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand", "Home & Garden", "home-and-garden"},
		{"odd chars", "  Odd---Chars!!", "odd-chars"},
		{"simple", "Men", "men"},
		{"spaces", "Summer Collection 2024", "summer-collection-2024"},
		{"leading trailing", "--Sale--", "sale"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Slugify(c.in))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("Home & Garden"), Slugify("Home & Garden"))
}
