package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Kind определяет семантический тип значения
type Kind int

const (
	// KindNull - отсутствующее значение (NULL / NaN в источнике)
	KindNull Kind = iota
	// KindString - текстовое значение
	KindString
	// KindInt - целое число
	KindInt
	// KindFloat - число с плавающей точкой
	KindFloat
	// KindBool - логическое значение
	KindBool
	// KindTime - дата/время
	KindTime
)

// String - строковое представление типа
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// TimeLayout - формат даты/времени, совместимый с DATETIME в MariaDB
const TimeLayout = "2006-01-02 15:04:05"

// Value представляет одно скалярное значение ячейки.
// Тип закрыт: null, string, int, float, bool, time.
// Нулевое значение Value{} эквивалентно Null().
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Null создает отсутствующее значение (маркер NULL)
func Null() Value {
	return Value{kind: KindNull}
}

// String создает текстовое значение
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int создает целочисленное значение
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float создает значение с плавающей точкой
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool создает логическое значение
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Time создает значение даты/времени (хранится в UTC не принудительно)
func Time(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// FromAny конвертирует значение, полученное от database/sql драйвера, в Value.
// nil и неизвестные типы без потерь: nil → Null, остальное → String через fmt.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case []byte:
		return String(string(x))
	case int64:
		return Int(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case float64:
		return Float(x)
	case float32:
		return Float(float64(x))
	case bool:
		return Bool(x)
	case time.Time:
		return Time(x)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// FromText восстанавливает значение заданного типа из строковой формы,
// полученной через Text. Обратная операция к Text.
func FromText(k Kind, text string) (Value, error) {
	switch k {
	case KindNull:
		return Null(), nil
	case KindString:
		return String(text), nil
	case KindInt:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid int value %q: %w", text, err)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float value %q: %w", text, err)
		}
		return Float(f), nil
	case KindBool:
		switch text {
		case "1", "true":
			return Bool(true), nil
		case "0", "false":
			return Bool(false), nil
		default:
			return Value{}, fmt.Errorf("invalid bool value %q", text)
		}
	case KindTime:
		t, err := time.Parse(TimeLayout, text)
		if err != nil {
			return Value{}, fmt.Errorf("invalid time value %q: %w", text, err)
		}
		return Time(t), nil
	default:
		return Value{}, fmt.Errorf("unknown value kind: %d", int(k))
	}
}

// Kind возвращает семантический тип значения
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull проверяет является ли значение маркером NULL
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text возвращает строковую форму значения.
// Для NULL возвращается пустая строка - вызывающий обязан проверить IsNull.
// bool представляется как "1"/"0" (TINYINT(1) в MariaDB, валидный literal в PostgreSQL).
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindTime:
		return v.t.Format(TimeLayout)
	default:
		return ""
	}
}

// String реализует fmt.Stringer (NULL отображается явно)
func (v Value) String() string {
	if v.kind == KindNull {
		return "NULL"
	}
	return v.Text()
}

// Int64 возвращает целочисленное значение (0 если тип другой)
func (v Value) Int64() int64 {
	return v.i
}

// Float64 возвращает значение с плавающей точкой (0 если тип другой)
func (v Value) Float64() float64 {
	return v.f
}

// BoolVal возвращает логическое значение (false если тип другой)
func (v Value) BoolVal() bool {
	return v.b
}

// TimeVal возвращает значение даты/времени (zero time если тип другой)
func (v Value) TimeVal() time.Time {
	return v.t
}

// Native возвращает значение в виде нативного Go типа для привязки
// к параметру database/sql (nil для NULL)
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// Equal сравнивает два значения по типу и содержимому
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindTime:
		return v.t.Equal(other.t)
	default:
		return v.s == other.s && v.i == other.i && v.f == other.f && v.b == other.b
	}
}
