// Package health serves liveness and readiness probes.
//
// Liveness always answers OK. Readiness runs its checks concurrently under
// one timeout and answers 503 when any of them fails:
//
//	checks := health.Checks{
//	    "render": health.RenderCheck(views.App),
//	    "bundle": health.FileCheck(web.Static, web.ClientFiles...),
//	}
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// Both respond with plain text, or with a JSON Response when the request
// carries Accept: application/json or ?format=json.
package health
