package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"marquee/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckTracker verifies that an enabled tracker has credentials and that its
// site answers. The API key is not sent; UNIT3D rejects unauthenticated API
// calls the same way for good and bad keys.
func CheckTracker(ctx context.Context, client *http.Client, name string, cfg config.Tracker, uploadURL string) Result {
	switch {
	case strings.TrimSpace(cfg.APIKey) == "":
		return Result{Name: name, Detail: "missing api key"}
	case strings.TrimSpace(cfg.AnnounceURL) == "":
		return Result{Name: name, Detail: "missing announce url"}
	}

	site, err := siteRoot(uploadURL)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, site, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("site unavailable (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", site)}
}

func siteRoot(uploadURL string) (string, error) {
	if strings.TrimSpace(uploadURL) == "" {
		return "", errors.New("upload url unknown")
	}
	parsed, err := url.Parse(uploadURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid upload url %q", uploadURL)
	}
	return parsed.Scheme + "://" + parsed.Host + "/", nil
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "reachability check timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "reachability check timed out"
	}
	return fmt.Sprintf("unreachable (%v)", err)
}
