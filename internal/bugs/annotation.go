package bugs

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotation is one element of a bug instance's annotation list.
// Format renders the annotation for a message-format key such as "",
// "givenClass", "name" or "full".
type Annotation interface {
	Format(key string, primaryClass *ClassAnnotation) string
}

// ClassAnnotation references a class. ClassName uses the dotted form.
type ClassAnnotation struct {
	ClassName   string                `json:"className"`
	SourceFile  string                `json:"sourceFile,omitempty"`
	SourceLines *SourceLineAnnotation `json:"sourceLines,omitempty"`
}

// MethodAnnotation references a method of a class.
type MethodAnnotation struct {
	ClassName   string                `json:"className"`
	MethodName  string                `json:"methodName"`
	Parameters  []string              `json:"parameters,omitempty"`
	ReturnType  string                `json:"returnType,omitempty"`
	IsStatic    bool                  `json:"isStatic,omitempty"`
	SourceLines *SourceLineAnnotation `json:"sourceLines,omitempty"`
}

// FieldAnnotation references a field of a class.
type FieldAnnotation struct {
	ClassName   string                `json:"className"`
	FieldName   string                `json:"fieldName"`
	FieldType   string                `json:"fieldType,omitempty"`
	IsStatic    bool                  `json:"isStatic,omitempty"`
	SourceLines *SourceLineAnnotation `json:"sourceLines,omitempty"`
}

// LocalVariableAnnotation references a local variable of a method.
type LocalVariableAnnotation struct {
	Name     string `json:"name"`
	Register int    `json:"register"`
	PC       int    `json:"pc"`
}

// IntAnnotation carries an integer value.
type IntAnnotation struct {
	Value int `json:"value"`
}

// StringAnnotation carries a string value.
type StringAnnotation struct {
	Value string `json:"value"`
}

// SourceLineAnnotation points at a line range of a source file. Lines are
// 1-based; zero or negative values mean the line is unknown.
type SourceLineAnnotation struct {
	ClassName  string `json:"className"`
	SourceFile string `json:"sourceFile"`
	StartLine  int    `json:"startLine"`
	EndLine    int    `json:"endLine"`
}

// UnknownSourceLine returns a source line annotation without line
// information for the given class. When sourceFile is empty the file name
// is derived from the outermost class name.
func UnknownSourceLine(className, sourceFile string) *SourceLineAnnotation {
	if sourceFile == "" {
		sourceFile = outerSimpleName(className) + ".java"
	}
	return &SourceLineAnnotation{
		ClassName:  className,
		SourceFile: sourceFile,
		StartLine:  -1,
		EndLine:    -1,
	}
}

// PackageName returns the package part of a dotted class name.
func PackageName(className string) string {
	if idx := strings.LastIndex(className, "."); idx >= 0 {
		return className[:idx]
	}
	return ""
}

// DottedClassName converts a class name in internal slash form into dotted form.
func DottedClassName(className string) string {
	return strings.ReplaceAll(className, "/", ".")
}

func simpleName(className string) string {
	return className[strings.LastIndex(className, ".")+1:]
}

func outerSimpleName(className string) string {
	name := simpleName(className)
	if idx := strings.Index(name, "$"); idx > 0 {
		name = name[:idx]
	}
	return name
}

// shorten drops pkgName from typeName when the type lives directly in that
// package, and drops java.lang for its top-level types.
func shorten(pkgName, typeName string) string {
	idx := strings.LastIndex(typeName, ".")
	if idx < 0 {
		return typeName
	}
	if typeName[:idx] == pkgName || typeName[:idx] == "java.lang" {
		return typeName[idx+1:]
	}
	return typeName
}

func primaryPackage(primaryClass *ClassAnnotation) string {
	if primaryClass == nil {
		return ""
	}
	return primaryClass.PackageName()
}

// formatMember handles the keys shared by every class member annotation.
func formatMember(className, key string, primaryClass *ClassAnnotation) (string, bool) {
	switch key {
	case "class.givenClass":
		return shorten(primaryPackage(primaryClass), className), true
	case "simpleClass":
		return simpleName(className), true
	case "class":
		return className, true
	case "package":
		return PackageName(className), true
	}
	return "", false
}

// PackageName returns the package of the annotated class.
func (a *ClassAnnotation) PackageName() string {
	return PackageName(a.ClassName)
}

func (a *ClassAnnotation) Format(key string, primaryClass *ClassAnnotation) string {
	if s, ok := formatMember(a.ClassName, key, primaryClass); ok {
		return s
	}
	switch key {
	case "givenClass":
		return shorten(primaryPackage(primaryClass), a.ClassName)
	case "excludingPackage":
		return strings.TrimPrefix(a.ClassName, a.PackageName()+".")
	default:
		return a.ClassName
	}
}

func (a *MethodAnnotation) parameterList(pkgName string) string {
	params := make([]string, len(a.Parameters))
	for i, p := range a.Parameters {
		params[i] = shorten(pkgName, p)
	}
	return "(" + strings.Join(params, ", ") + ")"
}

// FullMethod returns the class-qualified method name with its parameters,
// shortening types that live in the primary class's package.
func (a *MethodAnnotation) FullMethod(primaryClass *ClassAnnotation) string {
	pkgName := primaryPackage(primaryClass)
	return shorten(pkgName, a.ClassName) + "." + a.MethodName + a.parameterList(pkgName)
}

func (a *MethodAnnotation) Format(key string, primaryClass *ClassAnnotation) string {
	if s, ok := formatMember(a.ClassName, key, primaryClass); ok {
		return s
	}
	switch key {
	case "name":
		return a.MethodName
	case "nameAndSignature":
		return a.MethodName + a.parameterList(PackageName(a.ClassName))
	case "shortMethod":
		return simpleName(a.ClassName) + "." + a.MethodName + "(...)"
	case "returnType":
		return a.ReturnType
	case "hash":
		return a.ClassName + "." + a.MethodName + a.parameterList("")
	case "givenClass":
		if primaryClass != nil && primaryClass.ClassName == a.ClassName {
			return a.MethodName + a.parameterList(primaryClass.PackageName())
		}
		return a.FullMethod(primaryClass)
	default:
		return a.FullMethod(primaryClass)
	}
}

func (a *FieldAnnotation) Format(key string, primaryClass *ClassAnnotation) string {
	if s, ok := formatMember(a.ClassName, key, primaryClass); ok {
		return s
	}
	switch key {
	case "name":
		return a.FieldName
	case "type":
		return a.FieldType
	case "givenClass":
		if primaryClass != nil && primaryClass.ClassName == a.ClassName {
			return a.FieldName
		}
		return shorten(primaryPackage(primaryClass), a.ClassName) + "." + a.FieldName
	default:
		return a.ClassName + "." + a.FieldName
	}
}

func (a *LocalVariableAnnotation) Format(key string, _ *ClassAnnotation) string {
	switch key {
	case "register":
		return strconv.Itoa(a.Register)
	case "pc":
		return strconv.Itoa(a.PC)
	}
	if a.Name == "" {
		return "?"
	}
	return a.Name
}

func (a *IntAnnotation) Format(key string, _ *ClassAnnotation) string {
	if key == "hash" {
		return ""
	}
	return strconv.Itoa(a.Value)
}

func (a *StringAnnotation) Format(key string, _ *ClassAnnotation) string {
	if key == "hash" {
		return ""
	}
	return a.Value
}

// PackageName returns the package of the class the lines belong to.
func (a *SourceLineAnnotation) PackageName() string {
	return PackageName(a.ClassName)
}

// IsUnknown reports whether the annotation lacks line information.
func (a *SourceLineAnnotation) IsUnknown() bool {
	return a.StartLine <= 0 || a.EndLine <= 0
}

func (a *SourceLineAnnotation) lines() string {
	switch {
	case a.IsUnknown():
		return "[unknown line]"
	case a.StartLine == a.EndLine:
		return fmt.Sprintf("[line %d]", a.StartLine)
	default:
		return fmt.Sprintf("[lines %d-%d]", a.StartLine, a.EndLine)
	}
}

func (a *SourceLineAnnotation) Format(key string, _ *ClassAnnotation) string {
	switch key {
	case "hash":
		return ""
	case "lineNumber":
		return a.lines()
	case "full":
		var b strings.Builder
		if pkg := a.PackageName(); pkg != "" {
			b.WriteString(strings.ReplaceAll(pkg, ".", "/"))
			b.WriteByte('/')
		}
		b.WriteString(a.SourceFile)
		b.WriteByte(':')
		b.WriteString(a.lines())
		return b.String()
	default:
		return "At " + a.SourceFile + ":" + a.lines()
	}
}
