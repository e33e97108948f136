package utils

import "math"

// normalizeEpsilon 低于该长度的向量视为零向量
const normalizeEpsilon = 1e-9

// Vector 二维向量，按值传递
// 用于位置、速度和加速度
type Vector struct {
	X, Y float64
}

// Vec 创建向量的便捷函数
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add 向量加法
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Sub 向量减法
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Scale 标量乘法
func (v Vector) Scale(k float64) Vector {
	return Vector{v.X * k, v.Y * k}
}

// Dot 点积
func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LengthSquared 长度的平方（避免开方）
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length 向量长度
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// DistanceSquared 两点距离的平方
func (v Vector) DistanceSquared(o Vector) float64 {
	return o.Sub(v).LengthSquared()
}

// IsZero 是否为零向量
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize 返回单位向量
//
// 长度接近 0 时返回零向量而不是除以零。
// 需要方向的调用方必须自行检查零长度。
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l < normalizeEpsilon {
		return Vector{}
	}
	return Vector{v.X / l, v.Y / l}
}

// Rotate 按角度（度）旋转向量
func (v Vector) Rotate(degrees float64) Vector {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clamp 将各分量限制在 [min, max] 矩形内
func (v Vector) Clamp(min, max Vector) Vector {
	return Vector{
		X: math.Max(min.X, math.Min(max.X, v.X)),
		Y: math.Max(min.Y, math.Min(max.Y, v.Y)),
	}
}
