package schedule

import "github.com/dance10/webapps/core"

// ResolveTeacher returns the teacher responsible for a session: the substitute when one is set,
// otherwise the main teacher of its class. An empty result means nobody teaches it.
func ResolveTeacher(sess Session, class *Class) string {
	if id := core.CleanString(sess.SubstituteTeacherID); id != "" {
		return id
	}
	if class == nil {
		return ""
	}
	return core.CleanString(class.TeacherID)
}

func effectiveTeacher(sess Session, classes map[string]Class) string {
	if cls, ok := classes[sess.ClassID]; ok {
		return ResolveTeacher(sess, &cls)
	}
	return ResolveTeacher(sess, nil)
}
