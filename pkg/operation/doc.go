/*
Package operation runs the thumbnail migration against one target file.

	+-------------+
	|  Operation  |
	|  (migrate)  |
	+------+------+
	       |
	+------+------+------+------+
	|             |             |
	+----+----+   +----+----+   +----+----+
	| target  |   | rewrite |   |   log   |
	| (I/O)   |   | (rules) |   | (report)|
	+---------+   +---------+   +---------+

🔄 Flow:
1. Resolves the target path and the rules whose glob accepts it
2. Reads the whole file once
3. Runs the rules in order over the text
4. Writes the file back in place, or renders a diff on a dry run
5. Reports the actual replacement counts

Strict mode turns "the wrap rule matched nothing" into ErrNoMatch and leaves
the file untouched.
*/
package operation
