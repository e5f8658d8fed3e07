// Package filter builds search filters for the OpenNMS ReST API and compiles them
// into query parameters for either protocol version.
//
// A Filter is an ordered list of clauses. Each clause holds a single Restriction
// (property, comparator, value) or a NestedRestriction group, plus the boolean
// operator that joins it to the next clause. Paging and ordering live on the filter.
//
// # Building
//
//	f := filter.NewFilter().
//	    WithAndRestriction(filter.NotNull("alarm.ackTime")).
//	    WithAndGroup(
//	        filter.Or(filter.Eq("alarm.severity", onms.Major)),
//	        filter.Or(filter.Eq("alarm.severity", onms.Critical)),
//	    ).
//	    WithOrderBy("alarm.lastEventTime", filter.DESC)
//
// # Compiling
//
// The legacy API takes flat parameters with one global comparator:
//
//	params, err := filter.NewV1Processor().Parameters(f)
//	// id=notnull&severity=MINOR&comparator=eq&limit=1000
//
// The v2 API takes a FIQL expression in the _s parameter:
//
//	params, err := filter.NewV2Processor().Parameters(f)
//	// _s=alarm.ackTime!=\u0000;(alarm.severity==MAJOR,alarm.severity==CRITICAL)&limit=1000
//
// Filters the target version cannot express fail with a *CompileError whose Kind
// is one of the package sentinels, so callers can test with errors.Is:
//
//	if errors.Is(err, filter.ErrUnsupportedComparator) {
//	    // fall back to the v2 API
//	}
//
// # Dates
//
// Every date is sent as yyyy-MM-ddTHH:mm:ss.SSS+0000 in UTC. ToDate and
// ToCanonicalDate accept epoch milliseconds, time.Time and the common string layouts.
package filter
