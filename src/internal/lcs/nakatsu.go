// Package lcs computes a longest common subsequence between two ordered
// sequences of chunk digests, the spine a delta assembler walks to tell
// reused chunks from literal ones apart.
package lcs

// Pair is one matched position: sequence a's element at index I equals
// sequence b's element at index J. A Trace is a list of Pairs with both I
// and J strictly increasing from one Pair to the next.
type Pair struct {
	I int
	J int
}

// Trace is an ordered longest-common-subsequence witness.
type Trace []Pair

// Engine computes an LCS trace between two ordered sequences of
// comparable elements (in this module, chunk digests carried as
// strings). A second backend (e.g. a sorted-match-list algorithm better
// suited to dissimilar inputs) can be dropped in behind this interface
// without touching callers.
type Engine interface {
	LCS(a, b []string) Trace
}

// Nakatsu computes the LCS trace with the diagonal, suffix-oriented
// recursion of Nakatsu, Kambayashi and Yajima (1982): O(n*(m-p)) time,
// where m <= n are the two sequence lengths and p is the LCS length, and
// O(m*p) space retained across rows so a trace can be recovered
// afterward. It keeps only one LCS witness rather than every maximum
// subsequence the original paper's algorithm can enumerate, trading that
// away for linear-in-p space.
type Nakatsu struct{}

// LCS implements Engine.
func (Nakatsu) LCS(a, b []string) Trace {
	return nakatsuLCS(a, b)
}

// nakatsuLCS implements the recursion directly over L_i(k), the largest
// column h in tau such that the suffixes sigma[i:] and tau[h:] (sigma
// being the shorter sequence) admit a common subsequence of length k:
//
//	L_i(0)   = len(tau)+1                         (the empty match, trivially)
//	L_i(k)   = the largest h in (L_{i+1}(k), L_{i+1}(k-1)) with
//	           tau[h-1] == sigma[i-1], or L_{i+1}(k) if no such h exists
//	L_{m+1}(k) = 0 for k >= 1                      (sigma exhausted, impossible)
//
// computed for increasing k (one row per k, i swept from m down to 1),
// keeping every row since the traceback needs to walk back through them.
// A row is kept even once it fails (column 1 undefined), since the row
// before it is the one the traceback actually uses.
//
// L_{i+1}(k) is read from the row currently being built (i+1 was already
// computed earlier in the same sweep, since i runs from m down to 1);
// L_{i+1}(k-1) is read from the previously completed row. Conflating the
// two, as if both came from a rows[] slot already appended, reads a row
// that doesn't exist yet for k's own predecessor.
func nakatsuLCS(a, b []string) Trace {
	sigma, tau := a, b
	swapped := false
	if len(a) > len(b) {
		sigma, tau = b, a
		swapped = true
	}
	m := len(sigma)
	n := len(tau)
	if m == 0 || n == 0 {
		return nil
	}

	// colAt returns row's entry for column i (L_i(k) for whichever k row
	// belongs to), applying the i == m+1 sentinel (0, the "sigma
	// exhausted" case for any k >= 1).
	colAt := func(row []int, i int) int {
		if i == m+1 {
			return 0
		}
		return row[i-1]
	}

	var rows [][]int
	p := 0
	for k := 1; k <= m; k++ {
		row := make([]int, m)
		for i := m; i >= 1; i-- {
			lower := colAt(row, i+1)
			var upper int
			if k == 1 {
				upper = n + 1 // L_{i+1}(0) == n+1 for every i, including m+1
			} else {
				upper = colAt(rows[k-2], i+1)
			}
			found := 0
			c := sigma[i-1]
			for h := upper - 1; h > lower; h-- {
				if tau[h-1] == c {
					found = h
					break
				}
			}
			if found != 0 {
				row[i-1] = found
			} else {
				row[i-1] = lower
			}
		}
		rows = append(rows, row)
		if row[0] == 0 {
			break
		}
		p = k
	}
	if p == 0 {
		return nil
	}

	// Traceback: sweep i = 1..m with the k budget starting at p. A
	// position i contributes a match (and consumes one unit of budget)
	// exactly when L_i(k) differs from L_{i+1}(k); carrying forward
	// without a match always leaves the value unchanged.
	trace := make(Trace, 0, p)
	k := p
	for i := 1; i <= m && k > 0; i++ {
		row := rows[k-1]
		next := colAt(row, i+1)
		if row[i-1] != next {
			h := row[i-1]
			if swapped {
				trace = append(trace, Pair{I: h - 1, J: i - 1})
			} else {
				trace = append(trace, Pair{I: i - 1, J: h - 1})
			}
			k--
		}
	}
	return trace
}
