// Package clientip resolves the originating client address of an
// *http.Request served behind one or more reverse proxies.
//
// GetAddr examines proxy headers in descending priority until the first
// valid address is found:
//
//  1. CF-Connecting-IP  (Cloudflare)
//  2. DO-Connecting-IP  (DigitalOcean App Platform)
//  3. X-Forwarded-For   (comma-separated, first valid entry is used)
//  4. X-Real-IP         (Nginx and similar)
//  5. RemoteAddr        (TCP peer address)
//
// The result is a netip.Addr with IPv4-mapped forms unmapped and zones
// removed, ready to be handed to the classifier. GetAddrFrom takes an
// explicit header list for deployments that trust a different proxy chain.
//
// # Usage
//
//	import "github.com/dmitrymomot/botfilter/pkg/clientip"
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    addr := clientip.GetAddr(r)
//	    verdict, err := classifier.Classify(r.UserAgent(), addr)
//	    // ...
//	}
//
// # Error Handling
//
// Resolution never fails. When no valid address is found the zero
// netip.Addr is returned (GetIP returns "") and the caller decides how to
// proceed.
package clientip
