// Package allocor brokers a finite pool of compute resources (CPU, memory,
// worker slots and shared auxiliary services) among competing job requests.
// It performs admission control against a capacity ledger, issues
// time-bounded grants, reclaims resources on release or TTL expiry, and
// exposes a consistent, queryable view of cluster utilization.
//
// The engine is explicitly constructed and passed - one ledger per process,
// no hidden global state:
//
//	svc := allocor.New()
//	rt := svc.Runtime()
//	_ = rt.Start(ctx)
//	defer rt.Shutdown(ctx)
//
//	result, err := rt.RequestResources(ctx, engine.Request{
//		JobID:    "j1",
//		Services: []string{"filesystem", "github"},
//		Workers:  4,
//	})
package allocor
