package services

// Services defined in this package:
// - NoteService: Student-facing note listings, search and reading views
// - AdminNoteService: Editor CRUD, publication control and draft derivation
// - DirectoryService: Academic years, units and the lecturer directory
// - AuthService: Editor authentication and token handling
