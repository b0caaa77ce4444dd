package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// BuildPackage starts a package build for the latest committed revision.
func (c *Client) BuildPackage(ctx context.Context, problemID int, full bool, verify bool) error {
	_, err := c.call(ctx, "problem.buildPackage", map[string]string{
		"problemId": strconv.Itoa(problemID),
		"full":      strconv.FormatBool(full),
		"verify":    strconv.FormatBool(verify),
	})
	return err
}

// Packages lists the packages of the problem, newest state included.
func (c *Client) Packages(ctx context.Context, problemID int) ([]Package, error) {
	result, err := c.call(ctx, "problem.packages", map[string]string{
		"problemId": strconv.Itoa(problemID),
	})
	if err != nil {
		return nil, err
	}

	var packages []Package
	if err := json.Unmarshal(result, &packages); err != nil {
		return nil, fmt.Errorf("polygon problem.packages: failed to decode result: %w", err)
	}
	return packages, nil
}

const packagePollInterval = 2 * time.Second

// WaitForPackage polls the package listing until the newest package becomes
// READY. A FAILED package or an exceeded timeout is fatal. The poll honors
// context cancellation.
func (c *Client) WaitForPackage(ctx context.Context, problemID int, timeout time.Duration) error {
	deadline := c.now().Add(timeout)
	ticker := time.NewTicker(packagePollInterval)
	defer ticker.Stop()

	for {
		packages, err := c.Packages(ctx, problemID)
		if err != nil {
			return err
		}

		if len(packages) > 0 {
			latest := packages[0]
			for _, pkg := range packages[1:] {
				if pkg.CreationTimeSeconds > latest.CreationTimeSeconds {
					latest = pkg
				}
			}
			switch latest.State {
			case PackageStateReady:
				return nil
			case PackageStateFailed:
				return fmt.Errorf("package build failed for problem %d", problemID)
			case PackageStateRunning:
				// still building, keep polling
			}
		}

		if !c.now().Before(deadline) {
			return fmt.Errorf("timeout while waiting for package build for problem %d", problemID)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
