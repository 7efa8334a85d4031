package tac

import (
	"fmt"
	"strconv"
	"strings"
)

// isLibraryFunction reports whether name is handled by the VM itself
// rather than by a labeled function in the program.
func isLibraryFunction(name string) bool {
	return name == "print" || name == "input"
}

// invokeLibrary dispatches a library call with the popped arguments.
func (vm *VM) invokeLibrary(name string, args []Value) (Value, error) {
	switch name {
	case "print":
		return nil, vm.libPrint(args)
	case "input":
		return vm.libInput(args)
	}
	return nil, runtimeErrorf("unknown library function %q", name)
}

// libPrint writes values to the VM's output. A string first argument is
// a positional template: {} consumes the next value, {N} indexes, a
// backslash renders as a newline, and no trailing newline is added.
// Any other first argument prints all values space-separated with a
// newline. No arguments print a bare newline.
func (vm *VM) libPrint(args []Value) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(vm.stdout)
		return err
	}

	if template, ok := args[0].(string); ok {
		rendered, err := renderTemplate(template, args[1:])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(vm.stdout, rendered)
		return err
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = FormatValue(arg)
	}
	_, err := fmt.Fprintln(vm.stdout, strings.Join(parts, " "))
	return err
}

// renderTemplate substitutes {} and {N} placeholders with the given
// values and turns each backslash into a newline.
func renderTemplate(template string, values []Value) (string, error) {
	var sb strings.Builder
	next := 0

	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch == '\\' {
			sb.WriteByte('\n')
			continue
		}
		if ch != '{' {
			sb.WriteByte(ch)
			continue
		}

		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			sb.WriteByte(ch)
			continue
		}
		spec := template[i+1 : i+end]
		i += end

		index := next
		if spec != "" {
			n, err := strconv.Atoi(spec)
			if err != nil {
				return "", runtimeErrorf("malformed print placeholder {%s}", spec)
			}
			index = n
		} else {
			next++
		}
		if index < 0 || index >= len(values) {
			return "", runtimeErrorf("print placeholder {%s} has no argument", spec)
		}
		sb.WriteString(FormatValue(values[index]))
	}
	return sb.String(), nil
}

// libInput writes the prompt and reads one line from the VM's input.
func (vm *VM) libInput(args []Value) (Value, error) {
	if len(args) > 0 {
		if _, err := fmt.Fprint(vm.stdout, FormatValue(args[0])); err != nil {
			return nil, err
		}
	}
	line, err := vm.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// FormatValue renders a runtime value for program output.
func FormatValue(v Value) string {
	switch value := v.(type) {
	case nil:
		return "nil"
	case bool:
		if value {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case string:
		return value
	case ArrayRef:
		return "<list " + value.ID + ">"
	case TupleRef:
		return "<tuple " + value.ID + ">"
	default:
		return fmt.Sprintf("%v", v)
	}
}
