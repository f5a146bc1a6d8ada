package syntax

// Kind labels every token and node of a syntax tree.
type Kind uint16

// Terminal kinds produced by the lexer.
const (
	Atom Kind = iota
	Digits
	StringLiteral
	Equals
	DoubleColon
	Pipe
	Dollar
	Plus
	Minus
	Star
	Slash
	LBrace
	RBrace
	Let
	If
	Then
	Else
	True
	False
	Whitespace
	Eol
	Error

	// Composite kinds produced by the parser.
	Root
	BindingDef
	FunctionCall
	FunctionCallParams
	Lambda
	LambdaParams
	BindingUsage
	BinOp
	IfExpr
	Block

	// Item and Expr are the two categories the ast package sorts elements
	// into. The parser never labels a node with either of them.
	Item
	Expr
)

var kindNames = [...]string{
	Atom:               "Atom",
	Digits:             "Digits",
	StringLiteral:      "StringLiteral",
	Equals:             "Equals",
	DoubleColon:        "DoubleColon",
	Pipe:               "Pipe",
	Dollar:             "Dollar",
	Plus:               "Plus",
	Minus:              "Minus",
	Star:               "Star",
	Slash:              "Slash",
	LBrace:             "LBrace",
	RBrace:             "RBrace",
	Let:                "Let",
	If:                 "If",
	Then:               "Then",
	Else:               "Else",
	True:               "True",
	False:              "False",
	Whitespace:         "Whitespace",
	Eol:                "Eol",
	Error:              "Error",
	Root:               "Root",
	BindingDef:         "BindingDef",
	FunctionCall:       "FunctionCall",
	FunctionCallParams: "FunctionCallParams",
	Lambda:             "Lambda",
	LambdaParams:       "LambdaParams",
	BindingUsage:       "BindingUsage",
	BinOp:              "BinOp",
	IfExpr:             "If",
	Block:              "Block",
	Item:               "Item",
	Expr:               "Expr",
}

// String returns the name of the kind as it appears in debug trees.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// IsTrivia reports whether the kind carries no meaning to the grammar.
func (k Kind) IsTrivia() bool { return k == Whitespace }

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	switch k {
	case Let, If, Then, Else, True, False:
		return true
	}

	return false
}

// IsOperator reports whether the kind is an infix arithmetic operator.
func (k Kind) IsOperator() bool {
	switch k {
	case Plus, Minus, Star, Slash:
		return true
	}

	return false
}

// IsComposite reports whether the kind labels nodes rather than tokens.
func (k Kind) IsComposite() bool { return k >= Root }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
