package cmd

import (
	"bufio"
	"strings"
	"testing"
)

func TestPromptPasswordReadsLineWithoutTerminal(t *testing.T) {
	old := stdin
	t.Cleanup(func() { stdin = old })
	stdin = bufio.NewReader(strings.NewReader("s3cret\n"))

	var pw string
	if err := promptPassword(&pw); err != nil {
		t.Fatal(err)
	}
	if pw != "s3cret" {
		t.Errorf("password = %q", pw)
	}

	// A value from the flag is kept.
	pw = "flag"
	if err := promptPassword(&pw); err != nil || pw != "flag" {
		t.Errorf("password = %q, err = %v", pw, err)
	}
}
