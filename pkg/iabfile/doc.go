// Package iabfile reads the text formats used by the IAB/ABC International
// Spiders & Robots reference lists.
//
// Reference files are ISO-8859-1 encoded. Two shapes exist:
//
//   - the IP list, one address or CIDR block per line (LineReader);
//   - the include and exclude user agent lists, pipe-delimited records
//     with "#" comment lines (Reader).
//
// Both readers trim every value and skip blank and comment lines, so callers
// only see data. The package also holds the field helpers shared by all list
// parsers: Flag for "1"/"0" flags and ParseDate for the optional MM/DD/YYYY
// inactive date.
//
// # Usage
//
//	r := iabfile.NewReader(f)
//	for {
//	    rec, err := r.Read()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    active, err := rec.Flag(1)
//	    ...
//	}
//
// # Error Handling
//
// Malformed flags return ErrMalformedFlag. Dates never fail: a blank or
// unparseable date yields the zero time.Time, which callers treat as "no
// inactive date".
package iabfile
