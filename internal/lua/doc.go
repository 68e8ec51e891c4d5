/*
Package lua implements a front end and a tree-walking evaluator for a
Lua-like scripting language.

Grammars

	chunk       --> block EOF ;
	block       --> stat* retstat? ;
	stat        --> ";" | "break" | "::" NAME "::" | "goto" NAME
	              | "do" block "end"
	              | "while" exp "do" block "end"
	              | "repeat" block "until" exp
	              | "if" exp "then" block ( "elseif" exp "then" block )* ( "else" block )? "end"
	              | "for" NAME "=" exp "," exp ( "," exp )? "do" block "end"
	              | "for" NAME ( "," NAME )* "in" explist "do" block "end"
	              | "function" funcname funcbody
	              | "local" "function" NAME funcbody
	              | "local" attnamelist ( "=" explist )?
	              | varlist "=" explist
	              | functioncall ;
	retstat     --> "return" explist? ";"? ;
	funcname    --> NAME ( "." NAME )* ( ":" NAME )? ;
	funcbody    --> "(" parlist? ")" block "end" ;
	exp         --> "nil" | "false" | "true" | NUMBER | STRING | "..."
	              | "function" funcbody | prefixexp | tableconstructor
	              | exp binop exp | unop exp ;
	prefixexp   --> ( NAME | "(" exp ")" ) ( "." NAME | "[" exp "]" | ":" NAME args | args )* ;
	args        --> "(" explist? ")" | tableconstructor | STRING ;
	tableconstructor --> "{" ( field ( ( "," | ";" ) field )* ( "," | ";" )? )? "}" ;
	field       --> "[" exp "]" "=" exp | NAME "=" exp | exp ;

Source text goes through the Scanner, whose tokens are turned into a *Block
by the Parser. The Interpreter runs the block; host functions are reached
through the Builtins registry it is created with.
*/
package lua
