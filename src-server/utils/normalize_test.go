package utils_test

import (
	"testing"

	"tangocal/src-server/utils"
)

func TestNormalizeQuery(t *testing.T) {
	for _, testCase := range []struct {
		input string
		want  string
	}{
		{"Are there any practicals tonight?", "are there any practicas tonight?"},
		{"find me a mill onga this weekend", "find me a milonga this weekend"},
		{"My Longa tomorrow", "milonga tomorrow"},
		{"tangle events next week", "tango events next week"},
		{"  Tango Classes on Friday ", "classes on friday"},
		{"nothing to fix here", "nothing to fix here"},
		// correctly spelled terms must come through untouched
		{"any practicas tonight?", "any practicas tonight?"},
		{"where is the practica", "where is the practica"},
		{"milongas this weekend", "milongas this weekend"},
	} {
		if got := utils.NormalizeQuery(testCase.input); got != testCase.want {
			t.Errorf("NormalizeQuery(%q) = %q, want %q", testCase.input, got, testCase.want)
		}
	}
}

func TestCleanupString(t *testing.T) {
	if got := utils.CleanupString("  hello world.  "); got != "Hello World" {
		t.Errorf("CleanupString = %q", got)
	}
}
