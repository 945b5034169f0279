package jvmgen

// readFrame 解码后的一个展开帧
type readFrame struct {
	offset int
	local  []any
	stack  []any
}

// readFrames 解码 src 的 StackMapTable（压缩）或 StackMap（展开），
// 并为未初始化类型引用的 NEW 指令创建标签
func (r *codeReader) readFrames() []readFrame {
	src := r.src
	if src.stackMap == nil {
		return nil
	}
	data := src.stackMap.Bytes()
	p := 0
	u1 := func() int {
		v := int(data[p])
		p++
		return v
	}
	u2 := func() int {
		v := int(data[p])<<8 | int(data[p+1])
		p += 2
		return v
	}
	readType := func() any {
		switch tag := u1(); tag {
		case itemObject:
			return r.cw.itemAt(u2()).s1
		case itemUninitialized:
			return r.label(u2())
		default:
			return tag
		}
	}
	readTypes := func(n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = readType()
		}
		return out
	}

	frames := make([]readFrame, 0, src.frameCount)
	if r.cw.version&0xFFFF < V1_6 {
		for i := 0; i < src.frameCount; i++ {
			offset := u2()
			local := readTypes(u2())
			stack := readTypes(u2())
			r.label(offset)
			frames = append(frames, readFrame{offset: offset, local: local, stack: stack})
		}
		return frames
	}

	local := src.implicitLocals()
	offset := -1
	for i := 0; i < src.frameCount; i++ {
		tag := u1()
		var delta int
		var stack []any
		switch {
		case tag < sameLocals1StackItemFrame:
			delta = tag
		case tag < 128:
			delta = tag - sameLocals1StackItemFrame
			stack = readTypes(1)
		case tag == sameLocals1StackItemFrameExtended:
			delta = u2()
			stack = readTypes(1)
		case tag >= chopFrame && tag < sameFrameExtended:
			delta = u2()
			local = local[:len(local)-(sameFrameExtended-tag)]
		case tag == sameFrameExtended:
			delta = u2()
		case tag > sameFrameExtended && tag < fullFrame:
			delta = u2()
			local = append(local[:len(local):len(local)], readTypes(tag-sameFrameExtended)...)
		default:
			delta = u2()
			local = readTypes(u2())
			stack = readTypes(u2())
		}
		offset += delta + 1
		r.label(offset)
		frames = append(frames, readFrame{
			offset: offset,
			local:  append([]any(nil), local...),
			stack:  stack,
		})
	}
	return frames
}

// implicitLocals 由描述符推出的入口帧局部变量，long/double 占一项
func (mw *MethodWriter) implicitLocals() []any {
	var local []any
	if mw.access&AccStatic == 0 {
		if mw.access&accConstructor == 0 {
			local = append(local, mw.cw.thisName)
		} else {
			local = append(local, UninitializedThis)
		}
	}
	for _, arg := range argumentTypes(mw.descriptor) {
		switch arg.Sort() {
		case SortBoolean, SortChar, SortByte, SortShort, SortInt:
			local = append(local, Integer)
		case SortFloat:
			local = append(local, Float)
		case SortLong:
			local = append(local, Long)
		case SortDouble:
			local = append(local, Double)
		default:
			local = append(local, arg.InternalName())
		}
	}
	return local
}
