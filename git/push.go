package git

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PushRange is one "<local ref> <local sha> <remote ref> <remote sha>" line
// from the input git feeds a pre-push hook.
type PushRange struct {
	LocalRef  string
	LocalSHA  string
	RemoteRef string
	RemoteSHA string
}

// IsDelete reports whether the range deletes the remote ref.
func (p PushRange) IsDelete() bool {
	return p.LocalSHA == ZeroSHA
}

// ParsePushInput parses the stdin format of a pre-push hook.
func ParsePushInput(r io.Reader) ([]PushRange, error) {
	var ranges []PushRange

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed pre-push input line: %q", line)
		}
		ranges = append(ranges, PushRange{
			LocalRef:  fields[0],
			LocalSHA:  fields[1],
			RemoteRef: fields[2],
			RemoteSHA: fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pre-push input: %w", err)
	}

	return ranges, nil
}
