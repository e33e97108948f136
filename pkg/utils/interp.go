package utils

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MapRange 把 value 从 [inMin, inMax] 线性映射到 [outMin, outMax]
// 不做截断，超出输入区间的值按同样比例外推
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return Lerp(outMin, outMax, (value-inMin)/(inMax-inMin))
}

// CenterText 返回在宽度 width 内居中一行文字的 x 坐标
// 字符宽度固定为 charWidth 像素
func CenterText(width int, s string, charWidth int) float64 {
	return float64((width - len(s)*charWidth) / 2)
}
