// Package script runs Lua scripts against an editor session.
//
// Scripts see a global "editor" table and a restricted standard library
// (base, table, string and math). Rows and columns are 1-based on the Lua
// side.
//
//	editor.insert("hello")
//	editor.newline()
//	editor.move("up")
//	editor.move("end", 1, true) -- extend the selection
//	local text = editor.cut()
//	editor.go_to(3, 1)
//	editor.paste(text)
//	editor.save("out.txt")
//
// The editor table provides:
//
//	insert(s)               type s at the cursor
//	newline()               split the line at the cursor
//	delete()                delete the character under the cursor
//	backspace()             delete the character before the cursor
//	move(kind [, n [, extend]])
//	                        left right up down home end begfile endfile
//	                        pageup pagedown scrollup scrolldown
//	go_to(row, col)         move to a position; also available as editor["goto"]
//	select(r1, c1, r2, c2)  select from (r1, c1) to (r2, c2)
//	                        positions outside the buffer are errors
//	cut() copy()            return the selection, also writing it to the clipboard
//	paste([s])              insert s, or the clipboard contents
//	undo() redo()           return false when there was nothing to do
//	text()                  the whole buffer
//	line(n)                 line n without its terminator
//	line_count()
//	cursor()                row, col
//	save([path])            save, or save as path
//	message([s])            set the status message, or return it
package script
