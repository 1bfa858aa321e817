// Package plugins links the built-in plugins into a binary. Importing it for
// side effects registers echo, readme and license with the plugin registry.
package plugins

import (
	// Built-in plugins register themselves from init()
	_ "github.com/arthur-debert/quicken/pkg/plugins/echo"
	_ "github.com/arthur-debert/quicken/pkg/plugins/license"
	_ "github.com/arthur-debert/quicken/pkg/plugins/readme"
)
