/*
Package predicate holds the file-property tests stest can apply to a candidate.

Each test is a pure function of the candidate's metadata and a shared Env
(current identity and reference-file metadata). Tests are identified by ID and
listed in Table, which is also what the command line and the man page are built
from, so adding a test means adding one Table entry.

Results are three-valued. Pass and Fail are what they seem; Inapplicable is
returned by the newer/older comparisons when their reference file does not
exist, and is treated like Pass when tests are combined.
*/
package predicate
