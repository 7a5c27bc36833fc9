// Package instagram resolves profiles, follower pages and timeline posts
// from Instagram's web API.
//
// Requests go through a Transport. HTTPTransport talks to Instagram directly
// and can carry a session cookie; the scrapfly package provides one that
// routes the same requests through ScrapFly.
//
//	transport := instagram.NewHTTPTransport(cfg.Instagram, log)
//	transport.SetSession(sessionID, "")
//	client := instagram.NewClient(transport, cfg, log)
//
//	profile, err := client.FetchUserProfile(ctx, "instagram")
//	page, err := client.FetchFollowers(ctx, profile.ID, "", 50)
//
// Every error returned by the client carries a kind from pkg/errors.
package instagram
