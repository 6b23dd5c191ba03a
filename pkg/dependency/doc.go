// Package dependency models a single front-end dependency and the steps that
// install it.
//
// # Descriptors
//
// A dependency is declared with a descriptor string:
//
//	<name-or-path>[@<version-or-range>][#<resource1>|<resource2>|...]
//
// Examples:
//
//	backbone@>=1.0.0             registry package with a version range
//	jashkenas/underscore@1.4.4   GitHub repository at an exact tag
//	components/jquery#jquery.js  GitHub repository, one explicit resource
//	./src/lib                    local directory, copied as-is
//
// [New] parses a descriptor and decides once whether it is local or remote.
//
// # Pipeline
//
// Remote dependencies run a strictly sequential pipeline:
//
//	LookupPackage → ResolveVersion → Fetch → ResolveResources → Place
//
// Local dependencies only run [Dependency.Place]. Each step returns a
// structured error from [github.com/matzehuels/vendorjs/pkg/errors] so the
// installer can demote a single failure to a warning.
//
// # Services
//
// Steps that talk to the network take small interfaces ([PackageLookup],
// [TagLister], [ArchiveFetcher]) implemented by the clients in
// pkg/integrations and pkg/archive, which keeps the pipeline testable with
// fakes.
package dependency
