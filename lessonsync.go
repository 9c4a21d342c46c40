// Package lessonsync compiles an editor-maintained master document into a
// versioned lesson dataset consumed by chat-delivery bots. It splits the
// document into day blocks, segments long lesson text into delivery-sized
// posts, rewrites embedded media links into stable marker tokens while the
// referenced assets are resolved and cached, sanitizes author markup into
// the delivery channel's safe tag subset, and publishes the result with
// backup and restore guarantees.
//
// This package contains domain types, interfaces, and the pure compilation
// algorithms. Implementations live in subdirectories named after their
// primary dependency (e.g. drive/, fs/), and orchestration lives in
// compile/.
package lessonsync
