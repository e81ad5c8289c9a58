package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/reelfx"
	"github.com/five82/reelfx/internal/config"
)

// destinationChooser answers the first-file destination request. An explicit
// --output wins, then --yes, then an interactive prompt.
func destinationChooser(output string, yes bool, in io.Reader, out io.Writer) reelfx.DestinationChooser {
	switch {
	case output != "":
		dest := outputDestination(output)
		return func(*reelfx.DestinationRequest) (string, bool) { return dest, true }
	case yes:
		return reelfx.AcceptSuggested
	default:
		return promptChooser(in, out)
	}
}

// outputDestination expands output. A path without an extension is treated
// as a directory.
func outputDestination(output string) string {
	if expanded, err := config.ExpandPath(output); err == nil {
		output = expanded
	}
	if filepath.Ext(output) == "" && !strings.HasSuffix(output, string(os.PathSeparator)) {
		output += string(os.PathSeparator)
	}
	return output
}

// promptChooser asks on out and reads the answer from in. Enter accepts the
// suggestion, n or q stops the batch, anything else is a path. End of input
// stops the batch.
func promptChooser(in io.Reader, out io.Writer) reelfx.DestinationChooser {
	reader := bufio.NewReader(in)
	return func(req *reelfx.DestinationRequest) (string, bool) {
		fmt.Fprintf(out, "\n%s is ready.\n", req.Filename)
		fmt.Fprintf(out, "Save to [%s]\n(Enter accepts, a path or directory overrides, n stops): ", req.SuggestedPath)

		line, err := reader.ReadString('\n')
		answer := strings.TrimSpace(line)
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return "", false
		}
		switch strings.ToLower(answer) {
		case "":
			return "", true
		case "n", "no", "q", "quit":
			return "", false
		}
		if expanded, err := config.ExpandPath(answer); err == nil {
			answer = expanded
		}
		return answer, true
	}
}
