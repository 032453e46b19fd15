// Package authz decides who may read, insert, update or delete every row
// the service stores.
//
// Decisions are made in two steps. The Resolver turns an authenticated
// Principal into an Actor with a single primary-key lookup of the caller's
// profile (role and company). It never consults the policy, so resolution
// cannot recurse. The policy table then evaluates the Actor against a
// Resource describing the target row; a request is allowed when any rule
// for the (entity, operation) pair matches. There is no deny rule.
//
// Super-admin status comes from the identity email only. A profile whose
// role column says super_admin but whose email is outside the configured
// domain has no extra rights.
//
// Usage:
//
//	actor := resolver.Resolve(ctx, principal)
//	res := authz.CampaignResource(campaign)
//	if err := engine.Authorize(ctx, actor, authz.OperationUpdate, res); err != nil {
//	    return err // *PermissionDeniedError
//	}
package authz
