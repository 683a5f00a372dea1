package grammar

// Line is one non-blank certificate declaration: a set
// expression ("e"), an action-set expression ("a"), or a knowledge item
// ("k"). A certificate file is parsed one physical line at a time (see
// ParseFile), so each Line stands alone rather than the whole file being
// one token stream — the format's unbounded-length integer lists
// (action-id sets, Horn/2-CNF clause bodies) would otherwise have no way
// to tell "end of this list" from "start of the next line's leading
// index" inside a single contiguous grammar.
type Line struct {
	Comment   *CommentLine   `  @@`
	Expr      *ExprDecl      `| @@`
	Action    *ActionDecl    `| @@`
	Knowledge *KnowledgeDecl `| @@`
}

// CommentLine is a whole-line "# ..." comment, ignored by the driver.
type CommentLine struct {
	Text string `@Comment`
}

// ExprDecl is one `e <index> <variant>` set-expression declaration
//. Each variant struct repeats the "e" <index> prefix
// itself rather than factoring it into a shared leading field, since
// participle alternation is expressed across whole struct fields, not
// across a mandatory prefix followed by a sub-alternation.
type ExprDecl struct {
	Const    *ConstExpr    `  @@`
	BDD      *BDDExpr      `| @@`
	Horn     *HornExpr     `| @@`
	CNF2     *CNF2Expr     `| @@`
	Explicit *ExplicitExpr `| @@`
	Neg      *NegExpr      `| @@`
	Inter    *InterExpr    `| @@`
	Un       *UnionExpr    `| @@`
	Prog     *ProgExpr     `| @@`
	Regr     *RegrExpr     `| @@`
}

// ConstExpr is the EMPTY/INIT/GOAL constant, spelled "e <i> c e"/"c i"/"c g".
type ConstExpr struct {
	Index int    `"e" @Int "c"`
	Which string `@("e" | "i" | "g")`
}

// BDDExpr names a node inside an already-loaded BDD dump file
// (internal/formalism/bdd.LoadFile): "e <i> b" <dump-file-path> <node-name>.
type BDDExpr struct {
	Index int    `"e" @Int "b"`
	File  string `@String`
	Name  string `@Ident`
}

// HornExpr is a Horn basic set: "e <i> h" <nclauses> <dimacs-style
// literals...>, each clause a run of signed 1-based variable literals
// terminated by 0, at most one of which may be positive.
type HornExpr struct {
	Index    int   `"e" @Int "h"`
	NClauses int   `@Int`
	Lits     []int `{ @Int }`
}

// CNF2Expr is a 2-CNF basic set in the same DIMACS-style clause encoding as
// HornExpr, each clause a run of 1 or 2 literals terminated by 0. "h2"
// (rather than the bare digit the degenerate Horn case would otherwise
// collide with) marks the variant.
type CNF2Expr struct {
	Index    int   `"e" @Int "h2"`
	NClauses int   `@Int`
	Lits     []int `{ @Int }`
}

// ExplicitExpr is an Explicit basic set: "e <i> x" <nvars> <var-ids...> ":"
// <hex-packed models...>, each hex token a little-endian bitmask of the
// declared variable subset.
type ExplicitExpr struct {
	Index  int      `"e" @Int "x"`
	NVars  int      `@Int`
	Vars   []int    `{ @Int } ":"`
	Models []string `{ @Hex }`
}

// NegExpr is Negation(sub): "e <i> n" <sub>.
type NegExpr struct {
	Index int `"e" @Int "n"`
	Sub   int `@Int`
}

// InterExpr is Intersection(left, right): "e <i> i" <left> <right>.
type InterExpr struct {
	Index int `"e" @Int "i"`
	Left  int `@Int`
	Right int `@Int`
}

// UnionExpr is Union(left, right): "e <i> u" <left> <right>.
type UnionExpr struct {
	Index int `"e" @Int "u"`
	Left  int `@Int`
	Right int `@Int`
}

// ProgExpr is Progression(sub, actionSet): "e <i> p" <sub> <action-set>.
type ProgExpr struct {
	Index     int `"e" @Int "p"`
	Sub       int `@Int`
	ActionSet int `@Int`
}

// RegrExpr is Regression(sub, actionSet): "e <i> r" <sub> <action-set>.
type RegrExpr struct {
	Index     int `"e" @Int "r"`
	Sub       int `@Int`
	ActionSet int `@Int`
}

// ActionDecl is one `a <index> <variant>` action-set declaration
//.
type ActionDecl struct {
	Basic *ActionBasic `  @@`
	Union *ActionUnion `| @@`
	All   *ActionAll   `| @@`
}

// ActionBasic is an explicit action-id set: "a <i> b" <action-ids...>.
type ActionBasic struct {
	Index int   `"a" @Int "b"`
	IDs   []int `{ @Int }`
}

// ActionUnion is Union(left, right) over two earlier action-set indices.
type ActionUnion struct {
	Index int `"a" @Int "u"`
	Left  int `@Int`
	Right int `@Int`
}

// ActionAll is the distinguished "every action" constant, spelled "all".
type ActionAll struct {
	Index  int    `"a" @Int`
	Marker string `@"all"`
}

// KnowledgeDecl is one `k <index> <variant>` knowledge item.
type KnowledgeDecl struct {
	Subset *SubsetKnowledge `  @@`
	Dead   *DeadKnowledge   `| @@`
	Unsolv *UnsolvKnowledge `| @@`
}

// SubsetKnowledge claims Subset(left, right): "k <i> s" <left> <right>
// <tag> [premises...]. For tag "b5" left/right are action-set indices
// rather than set-expression indices.
type SubsetKnowledge struct {
	Index    int    `"k" @Int "s"`
	Left     int    `@Int`
	Right    int    `@Int`
	Tag      string `@Ident`
	Premises []int  `{ @Int }`
}

// DeadKnowledge claims Dead(set): "k <i> d" <set> <tag> [premises...].
type DeadKnowledge struct {
	Index    int    `"k" @Int "d"`
	Set      int    `@Int`
	Tag      string `@Ident`
	Premises []int  `{ @Int }`
}

// UnsolvKnowledge claims Unsolvable: "k <i> u" <tag> <premise> (spec
// §4.6's final "ci"/"cg" conclusion rules).
type UnsolvKnowledge struct {
	Index   int    `"k" @Int "u"`
	Tag     string `@Ident`
	Premise int    `@Int`
}
