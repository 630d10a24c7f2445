package reflection

import (
	"fmt"
)

func ClassFromName(r *Reflector, className string) (*Class, error) {
	return r.Class(className)
}

func ClassFromInstance(r *Reflector, instance Instance) (*Class, error) {
	return r.Class(instance.PHPClass())
}

func PropertyFromName(r *Reflector, className, propertyName string) (*Property, error) {
	class, err := ClassFromName(r, className)
	if err != nil {
		return nil, err
	}
	return propertyOf(class, propertyName)
}

func PropertyFromInstance(r *Reflector, instance Instance, propertyName string) (*Property, error) {
	class, err := ClassFromInstance(r, instance)
	if err != nil {
		return nil, err
	}
	return propertyOf(class, propertyName)
}

// MethodFromName wraps every failure, including a missing class, as a
// lookup of the class.
func MethodFromName(r *Reflector, className, methodName string) (*Method, error) {
	class, err := ClassFromName(r, className)
	if err != nil {
		return nil, fmt.Errorf("could not find class: %s: %w", className, err)
	}
	return methodOf(class, methodName)
}

func FunctionFromName(r *Reflector, functionName string) (*Func, error) {
	return r.Function(functionName)
}

func FunctionFromClosure(r *Reflector, closure Closure) (*Func, error) {
	return r.Closure(closure)
}

func ParameterFromClassAndMethod(r *Reflector, className, methodName, parameterName string) (*Parameter, error) {
	class, err := ClassFromName(r, className)
	if err != nil {
		return nil, err
	}
	return parameterOf(class, methodName, parameterName)
}

func ParameterFromInstanceAndMethod(r *Reflector, instance Instance, methodName, parameterName string) (*Parameter, error) {
	class, err := ClassFromInstance(r, instance)
	if err != nil {
		return nil, err
	}
	return parameterOf(class, methodName, parameterName)
}

func propertyOf(class *Class, name string) (*Property, error) {
	if p, ok := class.Property(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: property %s::$%s", ErrNotFound, class.FullName(), name)
}

func methodOf(class *Class, name string) (*Method, error) {
	if m, ok := class.Method(name); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: method %s::%s()", ErrNotFound, class.FullName(), name)
}

// parameterOf searches the parameters of the method linearly by exact name.
func parameterOf(class *Class, methodName, parameterName string) (*Parameter, error) {
	m, err := methodOf(class, methodName)
	if err != nil {
		return nil, err
	}
	for _, p := range m.Parameters() {
		if p.Name() == parameterName {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: could not find parameter: %s", ErrNotFound, parameterName)
}
