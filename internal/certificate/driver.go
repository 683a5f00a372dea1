package certificate

import (
	"fmt"
	"path/filepath"

	"proofverify/internal/actionstore"
	"proofverify/internal/certificate/grammar"
	"proofverify/internal/formalism/bdd"
	"proofverify/internal/formalism/cnf2"
	"proofverify/internal/formalism/explicit"
	"proofverify/internal/formalism/horn"
	"proofverify/internal/kb"
	"proofverify/internal/rules"
	"proofverify/internal/setstore"
	"proofverify/internal/task"
)

// Finding is one non-fatal rule-premise failure the driver noticed while
// replaying a certificate.
type Finding struct {
	KnowledgeIndex int
	Tag            string
}

// Result is the outcome of replaying an entire certificate.
type Result struct {
	Proven         bool
	ItemsProcessed int
	Findings       []Finding
}

// Driver wires a parsed certificate's declarations into the set-expression
// store, action-set store, knowledge base and rule engine: the
// append-only stores do the bookkeeping, rules.Engine decides validity,
// Driver only translates certificate syntax into their calls.
type Driver struct {
	Task    *task.Task
	Sets    *setstore.Store
	Actions *actionstore.Store
	KB      *kb.KB
	Rules   *rules.Engine

	baseDir string
	bdds    map[string]*bdd.File
}

// NewDriver creates a driver over a freshly loaded task. baseDir resolves
// relative BDD dump-file paths named in "b" expression declarations; pass
// the certificate file's own directory.
func NewDriver(tsk *task.Task, baseDir string) *Driver {
	sets := setstore.New(tsk)
	actions := actionstore.New(tsk)
	knowledge := kb.New()
	return &Driver{
		Task:    tsk,
		Sets:    sets,
		Actions: actions,
		KB:      knowledge,
		Rules:   rules.New(tsk, sets, actions, knowledge),
		baseDir: baseDir,
		bdds:    map[string]*bdd.File{},
	}
}

// Run replays every declaration in order. When discardFormulas is set, the
// driver first runs a pre-scan pass that records which expressions every
// B1-B4 knowledge item consults, then drops each expression's concrete
// payload once its last consultation has been replayed. Discarding is an
// optional memory-reclamation pass, never required for a correct replay.
func (d *Driver) Run(lines []*grammar.Line, discardFormulas bool) (*Result, error) {
	if discardFormulas {
		d.preScan(lines)
	}
	var findings []Finding
	for _, ln := range lines {
		switch {
		case ln.Expr != nil:
			if err := d.applyExpr(ln.Expr); err != nil {
				return nil, err
			}
		case ln.Action != nil:
			if err := d.applyAction(ln.Action); err != nil {
				return nil, err
			}
		case ln.Knowledge != nil:
			finding, err := d.applyKnowledge(ln.Knowledge, discardFormulas)
			if err != nil {
				return nil, err
			}
			if finding != nil {
				findings = append(findings, *finding)
			}
		}
	}
	return &Result{Proven: d.KB.Proven(), ItemsProcessed: d.KB.Len(), Findings: findings}, nil
}

// ApplyLine replays a single already-parsed line, for callers stepping
// through a certificate one declaration at a time (cmd/verify-repl) rather
// than replaying the whole file via Run. Skips the discard pre-scan: a
// step-through session favours inspectability over reclaiming memory.
func (d *Driver) ApplyLine(ln *grammar.Line) (*Finding, error) {
	switch {
	case ln.Expr != nil:
		return nil, d.applyExpr(ln.Expr)
	case ln.Action != nil:
		return nil, d.applyAction(ln.Action)
	case ln.Knowledge != nil:
		return d.applyKnowledge(ln.Knowledge, false)
	default:
		return nil, nil
	}
}

// preScan walks every b1-b4 knowledge item once, recording the set-
// expression operands it would consult, then finalises the recursive
// last_use closure (setstore.Store.Finalize) before the real replay begins.
func (d *Driver) preScan(lines []*grammar.Line) {
	idx := 0
	for _, ln := range lines {
		if ln.Knowledge == nil {
			continue
		}
		if s := ln.Knowledge.Subset; s != nil {
			if consulted := d.Rules.ConsultedOperands(s.Tag, s.Left, s.Right); consulted != nil {
				d.Sets.RecordConsult(idx, consulted...)
			}
		}
		idx++
	}
	d.Sets.Finalize()
}

func knowledgeDeclIndex(decl *grammar.KnowledgeDecl) int {
	switch {
	case decl.Subset != nil:
		return decl.Subset.Index
	case decl.Dead != nil:
		return decl.Dead.Index
	case decl.Unsolv != nil:
		return decl.Unsolv.Index
	default:
		return -1
	}
}

func (d *Driver) applyKnowledge(decl *grammar.KnowledgeDecl, discardFormulas bool) (*Finding, error) {
	idx := d.KB.Len()
	if declared := knowledgeDeclIndex(decl); declared != idx {
		return nil, fmt.Errorf("certificate: knowledge item %d is not the next free slot (%d)", declared, idx)
	}
	switch {
	case decl.Subset != nil:
		s := decl.Subset
		ok, err := d.Rules.VerifySubset(idx, s.Left, s.Right, s.Tag, s.Premises)
		if err != nil {
			return nil, err
		}
		if !ok {
			return d.failKnowledge(idx, s.Tag)
		}
		if discardFormulas {
			if consulted := d.Rules.ConsultedOperands(s.Tag, s.Left, s.Right); consulted != nil {
				d.Sets.MaybeDiscard(consulted, idx)
			}
		}
		return nil, nil
	case decl.Dead != nil:
		dd := decl.Dead
		ok, err := d.Rules.VerifyDead(idx, dd.Set, dd.Tag, dd.Premises)
		if err != nil {
			return nil, err
		}
		if !ok {
			return d.failKnowledge(idx, dd.Tag)
		}
		return nil, nil
	case decl.Unsolv != nil:
		u := decl.Unsolv
		ok, err := d.Rules.VerifyUnsolvable(idx, u.Tag, u.Premise)
		if err != nil {
			return nil, err
		}
		if !ok {
			return d.failKnowledge(idx, u.Tag)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("certificate: knowledge item %d has no recognised variant", idx)
	}
}

func (d *Driver) failKnowledge(idx int, tag string) (*Finding, error) {
	if err := d.KB.AddFailed(idx); err != nil {
		return nil, err
	}
	return &Finding{KnowledgeIndex: idx, Tag: tag}, nil
}

func (d *Driver) applyExpr(decl *grammar.ExprDecl) error {
	switch {
	case decl.Const != nil:
		c := decl.Const
		var which setstore.Kind
		switch c.Which {
		case "e":
			which = setstore.ConstEmpty
		case "i":
			which = setstore.ConstInit
		case "g":
			which = setstore.ConstGoal
		}
		return d.Sets.AddConstant(c.Index, which)
	case decl.BDD != nil:
		formula, err := d.bddFormula(decl.BDD)
		if err != nil {
			return err
		}
		return d.Sets.AddBasic(decl.BDD.Index, formula)
	case decl.Horn != nil:
		h := decl.Horn
		clauses, err := parseHornClauses(h.NClauses, h.Lits)
		if err != nil {
			return err
		}
		return d.Sets.AddBasic(h.Index, horn.New(d.Task.NumFacts(), clauses))
	case decl.CNF2 != nil:
		c := decl.CNF2
		clauses, err := parseCNF2Clauses(c.NClauses, c.Lits)
		if err != nil {
			return err
		}
		return d.Sets.AddBasic(c.Index, cnf2.New(d.Task.NumFacts(), clauses))
	case decl.Explicit != nil:
		x := decl.Explicit
		if len(x.Vars) != x.NVars {
			return fmt.Errorf("certificate: expression %d declares %d variables but lists %d", x.Index, x.NVars, len(x.Vars))
		}
		models, err := parseExplicitModels(x.NVars, x.Models)
		if err != nil {
			return err
		}
		formula, err := explicit.New(x.Vars, models)
		if err != nil {
			return err
		}
		return d.Sets.AddBasic(x.Index, formula)
	case decl.Neg != nil:
		return d.Sets.AddNegation(decl.Neg.Index, decl.Neg.Sub)
	case decl.Inter != nil:
		i := decl.Inter
		return d.Sets.AddIntersection(i.Index, i.Left, i.Right)
	case decl.Un != nil:
		u := decl.Un
		return d.Sets.AddUnion(u.Index, u.Left, u.Right)
	case decl.Prog != nil:
		p := decl.Prog
		return d.Sets.AddProgression(p.Index, p.Sub, p.ActionSet)
	case decl.Regr != nil:
		r := decl.Regr
		return d.Sets.AddRegression(r.Index, r.Sub, r.ActionSet)
	default:
		return fmt.Errorf("certificate: expression declaration has no recognised variant")
	}
}

// bddFormula loads (and caches, per file path) the named dump file, then
// resolves the requested node against the store's shared manager so every
// BDD basic set in a certificate lives in one manager.
func (d *Driver) bddFormula(decl *grammar.BDDExpr) (*bdd.Formula, error) {
	path := unquote(decl.File)
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}
	file, ok := d.bdds[path]
	if !ok {
		var err error
		file, err = bdd.LoadFile(d.Sets.Manager(), path)
		if err != nil {
			return nil, err
		}
		d.bdds[path] = file
	}
	return file.Formula(d.Sets.Manager(), decl.Name, d.Task.NumFacts())
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func (d *Driver) applyAction(decl *grammar.ActionDecl) error {
	switch {
	case decl.Basic != nil:
		return d.Actions.AddBasic(decl.Basic.Index, decl.Basic.IDs)
	case decl.Union != nil:
		u := decl.Union
		return d.Actions.AddUnion(u.Index, u.Left, u.Right)
	case decl.All != nil:
		return d.Actions.AddAll(decl.All.Index)
	default:
		return fmt.Errorf("certificate: action set declaration has no recognised variant")
	}
}
