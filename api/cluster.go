package api

import "github.com/Sunshine-Research/Sentinel/core/cluster"

// ClusterMode re-exports cluster.Mode so callers driving the {OFF,
// CLIENT, SERVER} state machine (spec.md §6) need only import api.
type ClusterMode = cluster.Mode

const (
	ClusterModeOff    = cluster.ModeOff
	ClusterModeClient = cluster.ModeClient
	ClusterModeServer = cluster.ModeServer
)

// CurrentClusterMode reports this process's cluster role.
func CurrentClusterMode() ClusterMode {
	return cluster.CurrentMode()
}

// SetClusterMode attempts the {OFF, CLIENT, SERVER} transition,
// refusing it if the last transition happened less than the 5-second
// debounce ago (spec.md §6).
func SetClusterMode(mode ClusterMode) bool {
	return cluster.TransitionTo(mode)
}

// StartTokenServer brings up the in-process reference TokenService and
// installs it as the active cluster client target, the server-side
// lifecycle start spec.md §6 calls for. globalLimitQPS <= 0 uses the
// package default.
func StartTokenServer(globalLimitQPS float64, rules []*cluster.ServerRule) *cluster.DefaultLocalTokenService {
	svc := cluster.NewDefaultLocalTokenService(globalLimitQPS)
	svc.LoadServerRules(rules)
	cluster.SetTokenService(svc)
	cluster.TransitionTo(cluster.ModeServer)
	return svc
}

// StopTokenServer tears down cluster dispatch, routing every
// cluster-mode flow rule back to its local fallback path.
func StopTokenServer() {
	cluster.SetTokenService(nil)
	cluster.TransitionTo(cluster.ModeOff)
}
