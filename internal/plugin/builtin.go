package plugin

// Module references understood out of the box.
const (
	TypeScriptParser = "@typescript-eslint/parser"
	TypeScriptPlugin = "@typescript-eslint/eslint-plugin"
	PrettierPlugin   = "eslint-plugin-prettier"
	JSPlugin         = "@eslint/js"
	ImportPlugin     = "eslint-plugin-import"
)

// Builtin returns a registry holding the handles referenced by the default
// configuration.
func Builtin() *Registry {
	r := NewRegistry()
	for _, h := range []Handle{
		NewHandle(TypeScriptParser, KindParser),
		NewHandle(TypeScriptPlugin, KindPlugin),
		NewHandle(PrettierPlugin, KindPlugin),
		NewHandle(JSPlugin, KindPlugin),
		NewHandle(ImportPlugin, KindPlugin),
	} {
		// Names are distinct constants.
		_ = r.Register(h)
	}
	return r
}
