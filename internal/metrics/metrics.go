package metrics

const Namespace = "saskatoon"
