// Package prompt implements the interactive credential collection
// loop. It solicits the connection fields for a mount, redisplays them
// with the secret masked, and repeats until the operator accepts or
// aborts. Pre-seeded fields are never re-prompted. Nothing here
// persists anything.
package prompt
