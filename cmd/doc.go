// Package cmd contains the command-line utilities of svmgrid. Each utility lives in its own main package below this
// one: converting pair files to libSVM, filtering and selecting features, running and analysing grid searches, and
// summarising scores. This package holds the code they share, such as building a logger and opening files.
package cmd
