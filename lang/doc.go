// Package lang parses and evaluates fjord, a small scripting language that
// mixes shell-style command invocation with lambdas, conditionals and integer
// arithmetic.
//
// # Pipeline
//
// Source text flows through the subpackages in order:
//
//   - [github.com/ardnew/fjord/lang/lexer] splits text into lexemes.
//   - [github.com/ardnew/fjord/lang/parser] builds a lossless syntax tree,
//     recovering from malformed input.
//   - [github.com/ardnew/fjord/lang/ast] views the tree as a typed grammar.
//   - [github.com/ardnew/fjord/lang/eval] walks the grammar in an
//     [github.com/ardnew/fjord/lang/env] scope chain.
//
// This package ties them together. [ParseString] and [ParseReader] return a
// [Program]; [Program.Eval] and [Eval] run one.
//
// # Grammar
//
// Informal EBNF:
//
//	Root         → (Item Eol)* Item?
//	Item         → BindingDef | Expr
//	BindingDef   → 'let' Atom '=' Expr
//	Expr         → BinOp | If | FunctionCall | Lambda | BindingUsage | Block
//	             | Atom | Digits | StringLiteral | 'true' | 'false'
//	BinOp        → Expr ('+' | '-' | '*' | '/') Expr
//	If           → 'if' Expr 'then' Expr 'else' Expr
//	FunctionCall → Atom Expr*
//	Lambda       → '|' Atom* '|' Expr
//	BindingUsage → '$' Atom
//	Block        → '{' (Item Eol)* Item? '}'
//
// Multiplication and division bind tighter than addition and subtraction,
// and all four associate to the left.
//
// # Example
//
//	let greet = |name| echo "hello," $name
//	greet world
//
//	let twice = |f x| f { f $x }
//	let inc = |n| $n + 1
//	twice $inc 3
//
// A call whose name is not bound to a lambda runs the executable of that
// name from the command search path, with each argument converted to text.
//
// # Errors
//
// Syntax errors never stop parsing. They are collected and returned together
// as a [*ParseError], which locates each one for display. Evaluation stops
// at the first failure, returned as an [*eval.Error].
package lang
