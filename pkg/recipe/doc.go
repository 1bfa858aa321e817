// Package recipe loads recipe documents and turns them into resolved plugin
// configurations.
//
// A recipe is a YAML sequence of single-key mappings. The key names the
// plugin and the value is its argument:
//
//	- echo: Generating project demo
//	- readme:
//	    project_name: demo
//	    author_name: Jane
//	- license: mit
//
// Sources may be local paths, file:// URLs or http(s) URLs.
package recipe
