package github

// HookEvents is what provisioned webhooks subscribe to. Only pull_request
// deliveries are routed today; push is included so a hook does not need
// re-provisioning when push notifications land.
var HookEvents = []string{"push", "pull_request"}
