package bdd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// File is a loaded BDD dump: an order header plus zero or more named
// BDDs, each built node-by-node against a shared Manager via the standard
// ITE identity Or(And(v, high), And(Not(v), low)), since Manager exposes
// no lower-level node-construction primitive than Var/And/Or/Not.
//
// Format:
//
//	order <fact-index> ...
//	bdd <name>
//	node <id> <fact-index> <low> <high>
//	...
//	root <id>
//	end
//
// repeated per named BDD. low/high are "F", "T", or an earlier node id
// local to the enclosing bdd block; node ids need not be contiguous.
type File struct {
	Order []int
	named map[string]ID
}

// LoadFile reads and builds every BDD in a dump file against mgr.
func LoadFile(mgr *Manager, path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bdd: %w", err)
	}
	defer f.Close()

	file := &File{named: map[string]ID{}}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	var nodes map[int]ID
	var name string
	inBlock := false

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "order":
			if file.Order != nil {
				return nil, fmt.Errorf("bdd: %s:%d: duplicate order line", path, lineNo)
			}
			for _, tok := range fields[1:] {
				v, err := strconv.Atoi(tok)
				if err != nil {
					return nil, fmt.Errorf("bdd: %s:%d: bad fact index %q", path, lineNo, tok)
				}
				file.Order = append(file.Order, v)
			}
		case "bdd":
			if inBlock {
				return nil, fmt.Errorf("bdd: %s:%d: nested bdd block", path, lineNo)
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("bdd: %s:%d: expected \"bdd <name>\"", path, lineNo)
			}
			name = fields[1]
			nodes = map[int]ID{}
			inBlock = true
		case "node":
			if !inBlock || len(fields) != 5 {
				return nil, fmt.Errorf("bdd: %s:%d: expected \"node <id> <fact> <low> <high>\"", path, lineNo)
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("bdd: %s:%d: bad node id %q", path, lineNo, fields[1])
			}
			factIdx, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("bdd: %s:%d: bad fact index %q", path, lineNo, fields[2])
			}
			low, err := resolveRef(nodes, fields[3])
			if err != nil {
				return nil, fmt.Errorf("bdd: %s:%d: %s", path, lineNo, err)
			}
			high, err := resolveRef(nodes, fields[4])
			if err != nil {
				return nil, fmt.Errorf("bdd: %s:%d: %s", path, lineNo, err)
			}
			v := mgr.Var(UnprimedVar(factIdx))
			nodes[id] = mgr.Or(mgr.And(v, high), mgr.And(mgr.Not(v), low))
		case "root":
			if !inBlock || len(fields) != 2 {
				return nil, fmt.Errorf("bdd: %s:%d: expected \"root <id>\"", path, lineNo)
			}
			id, err := resolveRef(nodes, fields[1])
			if err != nil {
				return nil, fmt.Errorf("bdd: %s:%d: %s", path, lineNo, err)
			}
			file.named[name] = id
		case "end":
			if !inBlock {
				return nil, fmt.Errorf("bdd: %s:%d: unexpected end", path, lineNo)
			}
			inBlock = false
		default:
			return nil, fmt.Errorf("bdd: %s:%d: unknown directive %q", path, lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bdd: %w", err)
	}
	if inBlock {
		return nil, fmt.Errorf("bdd: %s: unterminated bdd block %q", path, name)
	}
	return file, nil
}

func resolveRef(nodes map[int]ID, tok string) (ID, error) {
	switch tok {
	case "F":
		return False, nil
	case "T":
		return True, nil
	default:
		id, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("bad node reference %q", tok)
		}
		ref, ok := nodes[id]
		if !ok {
			return 0, fmt.Errorf("reference to undefined node %d", id)
		}
		return ref, nil
	}
}

// Formula resolves a named BDD from the file into a Formula bound to mgr
// (the same mgr LoadFile built the file's nodes against).
func (f *File) Formula(mgr *Manager, name string, numFacts int) (*Formula, error) {
	id, ok := f.named[name]
	if !ok {
		return nil, fmt.Errorf("bdd: no bdd named %q", name)
	}
	return New(mgr, id, numFacts), nil
}
