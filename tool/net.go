package tool

import (
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

var PingTimeout = 3 * time.Second

// ProbeHost pings the given host once to check reachability before a batch
// submit. Uses unprivileged UDP ping so it works without raw socket rights.
func ProbeHost(host string) error {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return fmt.Errorf("failed to create pinger for %s: %v", host, err)
	}
	pinger.Count = 1
	pinger.Timeout = PingTimeout
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		return fmt.Errorf("ping to %s failed: %v", host, err)
	}
	if pinger.Statistics().PacketsRecv == 0 {
		return fmt.Errorf("host %s did not answer ping within %s", host, PingTimeout)
	}
	return nil
}
