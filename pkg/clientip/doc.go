// Package clientip resolves the network origin used as the throttle key for
// the origin keyspace.
//
// By default only the TCP peer address is used. Deployments behind a reverse
// proxy list the headers that proxy sets, highest priority first:
//
//	res := clientip.NewResolver(clientip.HeaderCFConnectingIP, clientip.HeaderForwardedFor)
//	router.Use(res.Middleware)
//
//	origin := clientip.FromContext(r.Context())
//
// X-Forwarded-For may hold a comma-separated chain; its left-most valid
// entry is taken. Addresses are normalised with net.ParseIP, so IPv6 text
// variants of one address share a key.
package clientip
