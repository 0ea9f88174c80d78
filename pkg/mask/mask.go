// Package mask shortens user-supplied addresses for public display so the
// status endpoint never echoes a full identity back out.
package mask

// Address reduces an address to its first 6 and last 4 characters. Inputs
// too short to mask meaningfully are returned unchanged.
func Address(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
