// Package source defines the Source Adapter contract and the adapters for the
// structured ticketing APIs (Ticketmaster, Eventbrite, Bandsintown).
//
// An adapter translates an event.Query into provider requests and provider
// records into event.Event values. Upstream failures of any kind are logged and
// resolved to an empty result; they are never returned to the caller. Adapters
// are selected through a static Registry rather than by type.
package source
