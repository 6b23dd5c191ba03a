// Package pkg provides the libraries behind the vendorjs installer.
//
// # Overview
//
// Vendorjs installs front-end libraries straight from GitHub into a
// project's vendor directories. The pkg directory is organized into these
// areas:
//
//  1. [installer] - Batch orchestration over every configured target
//  2. [dependency] - One descriptor through locate, lookup, version, fetch, resolve and place
//  3. [integrations] - Registry and GitHub API clients (npm, Bower, GitHub tags)
//  4. [archive] and [fsutil] - Zip download, extraction and file placement
//  5. [pack] - Bundle concatenation and minification
//  6. [config], [cache], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The data flow for one dependency:
//
//	descriptor "backbone@>=1.0.0#backbone.js"
//	         ↓
//	    [dependency.New] (local path or remote name, version, resources)
//	         ↓
//	    [dependency.Dependency.LookupPackage] (registry → GitHub owner/repo)
//	         ↓
//	    [dependency.Dependency.ResolveVersion] (tags → highest matching version)
//	         ↓
//	    [dependency.Dependency.Fetch] (zip archive → temp directory)
//	         ↓
//	    [dependency.Dependency.ResolveResources] (manifest main files)
//	         ↓
//	    [dependency.Dependency.Place] (move into the destination)
//
// The [installer] repeats this for the children declared by each installed
// manifest, then [pack] writes one minified bundle per configured output.
//
// # Quick Start
//
//	inst, err := installer.New(installer.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	res, err := inst.Install(ctx, installer.Configuration{{
//	    Destination: "www/js/vendor",
//	    Sources:     []string{"backbone", "jashkenas/underscore#underscore.js"},
//	    Output:      "www/js/vendor.min.js",
//	}})
//	if err != nil {
//	    return err // bundle could not be written
//	}
//	for _, f := range res.Failures {
//	    logger.Warn("skipped", "source", f.Source, "err", f.Err)
//	}
//
// # Error Handling
//
// Errors carry a code from [errors] (PACKAGE_NOT_FOUND, FETCH_FAILED, ...)
// so callers can branch with errors.Is without matching messages.
package pkg
