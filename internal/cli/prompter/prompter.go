// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type Prompter interface {
	Confirm(prompt string, defaultValue bool) bool
}

type BasicPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewBasicPrompter() *BasicPrompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

func NewPrompter(in io.Reader, out io.Writer) *BasicPrompter {
	return &BasicPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question. An empty answer selects defaultValue.
func (p *BasicPrompter) Confirm(prompt string, defaultValue bool) bool {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	_, _ = fmt.Fprintf(p.out, "%s (%s): ", prompt, hint)

	response, err := p.in.ReadString('\n')
	if err != nil && response == "" {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "":
		return defaultValue
	case "y", "yes":
		return true
	default:
		return false
	}
}
