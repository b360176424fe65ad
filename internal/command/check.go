package command

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maxmcd/stackperm/internal/config"
	"github.com/maxmcd/stackperm/internal/errs"
	"github.com/maxmcd/stackperm/internal/logger"
	"github.com/maxmcd/stackperm/internal/stackperm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	demoPush   = []int{1, 2, 3}
	demoTarget = []int{2, 1, 3}
)

func runDemo(w io.Writer) error {
	_, err := fmt.Fprintln(w, "Is it a stack permutation", stackperm.IsStackPermutation(demoPush, demoTarget))
	return err
}

// parseSequence parses "1,2,3" or "[1, 2, 3]". A blank string is an empty
// sequence.
func parseSequence(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Errorf("%q is not an integer", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

type checkOptions struct {
	push    string
	target  string
	verbose bool
}

func runCheck(w io.Writer, co checkOptions) error {
	push, err := parseSequence(co.push)
	if err != nil {
		return errors.Wrap(err, "--push")
	}
	target, err := parseSequence(co.target)
	if err != nil {
		return errors.Wrap(err, "--target")
	}
	logger.Debugw("check", "push", push, "target", target)
	res, err := stackperm.Check(push, target)
	if err != nil {
		return err
	}
	if co.verbose {
		for _, op := range res.Ops {
			fmt.Fprintln(w, op)
		}
		if !res.Valid {
			fmt.Fprintf(w, "left on stack: %v\n", res.Remaining)
		}
	}
	_, err = fmt.Fprintln(w, res.Valid)
	return err
}

type batchOptions struct {
	location string
	jobs     int
}

type caseResult struct {
	valid bool
	err   error
}

func runBatch(ctx context.Context, w io.Writer, bo batchOptions) error {
	cases, err := config.ReadCases(bo.location)
	if err != nil {
		return err
	}
	if bo.jobs < 1 {
		bo.jobs = 1
	}
	results := make([]caseResult, len(cases))
	sem := make(chan struct{}, bo.jobs)
	group, gctx := errgroup.WithContext(ctx)
	for i := range cases {
		i := i // copy
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
		}
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			defer func() { <-sem }()
			c := cases[i]
			logger.Debugw("checking case", "name", c.Name, "push", c.Push, "target", c.Target)
			res, err := stackperm.Check(c.Push, c.Target)
			results[i] = caseResult{valid: res.Valid, err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	// Wait cancels gctx, only the caller's context says whether we were
	// interrupted
	if err := ctx.Err(); err != nil {
		return err
	}

	var failed int
	var first error
	fail := func(err error) {
		if first == nil {
			first = err
		}
		failed++
	}
	for i, c := range cases {
		r := results[i]
		switch {
		case r.err != nil:
			fmt.Fprintf(w, "%s\terror: %s\n", c.Name, r.err)
			fail(errors.Wrapf(r.err, "case %q", c.Name))
		case c.Want != nil && *c.Want != r.valid:
			fmt.Fprintf(w, "%s\t%t (want %t)\n", c.Name, r.valid, *c.Want)
			fail(errs.ErrUnexpectedResult{Case: c.Name, Want: *c.Want, Got: r.valid})
		default:
			fmt.Fprintf(w, "%s\t%t\n", c.Name, r.valid)
		}
	}
	if first != nil {
		return errors.Wrapf(first, "%d of %d cases failed", failed, len(cases))
	}
	logger.Info("checked ", len(cases), " cases")
	return nil
}
