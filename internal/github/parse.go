package github

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
)

// ErrBadTarget is returned when a PR argument is neither a number nor a PR URL.
var ErrBadTarget = errors.New("not a PR number or pull request URL")

// Target names a pull request in a repository.
type Target struct {
	Repo   string // OWNER/REPO, or HOST/OWNER/REPO for non-github.com hosts
	Number int
}

// ParseTarget accepts "123", "#123" or a pull request URL. The repository is
// only filled in for URLs.
func ParseTarget(arg string) (Target, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(strings.TrimPrefix(arg, "#")); err == nil {
		if n <= 0 {
			return Target{}, fmt.Errorf("%q: %w", arg, ErrBadTarget)
		}
		return Target{Number: n}, nil
	}

	u, err := url.Parse(arg)
	if err != nil || u.Host == "" {
		return Target{}, fmt.Errorf("%q: %w", arg, ErrBadTarget)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "pull" {
		return Target{}, fmt.Errorf("%q: %w", arg, ErrBadTarget)
	}
	n, err := strconv.Atoi(parts[3])
	if err != nil || n <= 0 {
		return Target{}, fmt.Errorf("%q: %w", arg, ErrBadTarget)
	}
	repo := parts[0] + "/" + parts[1]
	if host := u.Hostname(); host != "github.com" {
		repo = host + "/" + repo
	}
	return Target{Repo: repo, Number: n}, nil
}

var currentRepository = repository.Current

// ResolveRepo validates an explicit OWNER/REPO or falls back to the
// repository of the working directory.
func ResolveRepo(repo string) (string, error) {
	repo = strings.TrimSpace(repo)
	if repo != "" {
		r, err := repository.Parse(repo)
		if err != nil {
			return "", fmt.Errorf("parse repo %q: %w", repo, err)
		}
		return repoName(r), nil
	}
	r, err := currentRepository()
	if err != nil {
		return "", fmt.Errorf("could not determine repository, use -R: %w", err)
	}
	return repoName(r), nil
}

func repoName(r repository.Repository) string {
	if r.Host == "" || r.Host == "github.com" {
		return r.Owner + "/" + r.Name
	}
	return r.Host + "/" + r.Owner + "/" + r.Name
}

// orphanStep collects lines that arrive before any step column.
const orphanStep = "Log"

// stepChunk is the slice of a job log that one step produced.
type stepChunk struct {
	name  string
	lines []string
}

// parseJobLog splits `gh run view --log` output ("JOB\tSTEP\tLINE") into
// steps, in order of first appearance. Lines without the two leading
// columns continue the previous step.
func parseJobLog(out string) []stepChunk {
	var chunks []stepChunk
	index := make(map[string]int)
	current := -1

	for _, raw := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if raw == "" && current < 0 {
			continue
		}
		raw = strings.TrimSuffix(raw, "\r")
		parts := strings.SplitN(raw, "\t", 3)
		if len(parts) < 3 {
			if current < 0 {
				index[orphanStep] = len(chunks)
				chunks = append(chunks, stepChunk{name: orphanStep})
				current = len(chunks) - 1
			}
			chunks[current].lines = append(chunks[current].lines, raw)
			continue
		}
		step := parts[1]
		i, ok := index[step]
		if !ok {
			i = len(chunks)
			index[step] = i
			chunks = append(chunks, stepChunk{name: step})
		}
		current = i
		chunks[i].lines = append(chunks[i].lines, strings.TrimPrefix(parts[2], "\ufeff"))
	}
	return chunks
}
