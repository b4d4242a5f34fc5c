// Package options implements the options section of an experience.
//
// An option is a bookable variant of an experience (for example a morning or an evening
// departure). Options are created through the experience collection of the options service;
// their allowed pax types live in a separate sub-resource that is written after the option
// itself.
//
// # Upstream Endpoints
//
//   - GET    /experiences/{experienceId}/options
//   - POST   /experiences/{experienceId}/options
//   - PUT    /options/{id}
//   - PUT    /options/{id}/pax-types
//   - DELETE /options/{id}
//
// # HTTP Endpoints
//
// The section is served under /experiences/:experienceId/options (see package sectionapi).
package options
