// Package testutil provides shared test utilities and fixtures for integration tests.
//
// This package contains common setup code, test data, and helper functions
// that are used across multiple integration tests.
//
// Examples of utilities that belong here:
//   - Assertion helpers (verify cluster partitions, check agent assignments)
//   - World model generators (random maps, scattered agents)
//
// Note: For NATS server setup, use the github.com/arloliu/zoner/testing package.
// This package is specifically for integration test scenarios and helper utilities.
package testutil
