// Package github fetches the CI build logs of a pull request through the
// GitHub CLI.
//
// # Overview
//
// The client shells out to gh via go-gh, so authentication, enterprise hosts
// and proxies behave exactly as they do for gh itself. Every call goes through
// a Runner, which tests replace with a table-driven fake.
//
// # Fetch Sequence
//
//	gh pr view N --json number,title,author,headRefOid
//	  ↓
//	gh api repos/OWNER/REPO/actions/runs?head_sha=SHA   (newest run per workflow)
//	  ↓ errgroup, bounded
//	gh api repos/OWNER/REPO/actions/runs/ID/jobs
//	  ↓ errgroup, bounded
//	gh run view --log --job ID                           (one per job)
//
// Job logs arrive as "JOB<TAB>STEP<TAB>LINE" rows and are regrouped into
// steps. A job whose log cannot be fetched (still running, expired) keeps the
// step list reported by the jobs API with no lines, so the tree still shows it.
//
// # Metadata
//
// Status, conclusion, duration and URL of each job are returned next to the
// logs keyed by buildlog.JobKey. They are not part of the tree.
//
// # Targets
//
// ParseTarget accepts a PR number or a pull request URL; ResolveRepo falls
// back to the git remote of the working directory when no -R is given.
package github
