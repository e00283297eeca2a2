// Package agentlist holds the user agent pattern lists of the IAB/ABC
// International Spiders & Robots reference data.
//
// Two lists exist and both are evaluated in file order, first match wins:
//
//   - IncludeList: patterns of known browsers. A user agent that matches no
//     current row is not considered a browser. A row is current when it is
//     active or the evaluation instant is strictly before its inactive date.
//   - ExcludeList: patterns of known spiders and robots. A row matches when
//     its pattern occurs in the user agent and none of its exception patterns
//     do. An inactive row without a valid inactive date is switched off.
//     The matched row's inactive date decides whether the robot is reported
//     as active or inactive; it does not hide the match.
//
// Patterns are either anchored (must start the user agent) or free (may occur
// anywhere). All matching happens on lowercase strings folded with fixed
// English rules (golang.org/x/text/cases), so results do not depend on the
// host locale.
//
// # Usage
//
//	include, err := agentlist.ParseIncludeList(includeFile)
//	if err != nil {
//	    return err
//	}
//	exclude, err := agentlist.ParseExcludeList(excludeFile)
//	if err != nil {
//	    return err
//	}
//
//	now := time.Now()
//	if !include.Present(ua, now) {
//	    // not a known browser
//	}
//	if m := exclude.Evaluate(ua, now); m.Present {
//	    log.Printf("robot, impact=%s active=%t", m.Impact(), m.Active)
//	}
//
// # Error Handling
//
// Parsing fails as a whole with ErrMalformedRecord when a flag column is not
// "1"/"0" or when an exclude row carries an impact code other than 0, 1 or 2
// (ErrInvalidImpact). Missing or unparseable inactive dates are not errors;
// they read as "no inactive date".
package agentlist
