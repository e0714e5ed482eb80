// Package samples holds the numbered demonstration programs run by
// `dendron sample`.
package samples

import "fmt"

var programs = [][]string{
	{":=", "x", "55"},
	{
		":=", "able", "77",
		":=", "baker", "3",
		":=", "charlie", "/", "able", "baker",
	},
	{
		":=", "a", "3",
		":=", "b", "4",
		":=", "c", "5",
		":=", "result", "+", "*", "b", "b", "_", "*", "*", "4", "a", "c",
	},
	{
		":=", "x", "1",
		":=", "x", "+", "x", "x",
		":=", "x", "*", "x", "x",
		":=", "x", "-", "2", "_", "x",
		"@", "x",
		":=", "x", "/", "x", "2",
		":=", "pastafagiole", "#", "+", "19", "x",
	},
	// roots of x^2 - x - 6
	{
		":=", "a", "1",
		":=", "b", "_", "1",
		":=", "c", "_", "6",
		":=", "root", "/", "+", "_", "b", "#", "-", "*",
		"b", "b", "*", "*", "4", "a", "c", "*", "2", "a",
		":=", "root2", "/", "-", "_", "b", "#", "-", "*",
		"b", "b", "*", "*", "4", "a", "c", "*", "2", "a",
	},
}

// Count is the number of sample programs.
func Count() int {
	return len(programs)
}

// Program returns a copy of the tokens of sample n.
func Program(n int) ([]string, error) {
	if n < 0 || n >= len(programs) {
		return nil, fmt.Errorf("sample number out of range: %d (have 0-%d)", n, len(programs)-1)
	}
	return append([]string(nil), programs[n]...), nil
}
